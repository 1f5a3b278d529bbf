package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// offsetToPosition converts a byte offset in content to an LSP position.
// LSP characters are UTF-16 code units.
func offsetToPosition(content string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(content))
	before := content[:offset]

	lineStart := strings.LastIndexByte(before, '\n') + 1

	var character int
	for _, r := range before[lineStart:] {
		character += utf16.RuneLen(r)
	}

	return protocol.Position{
		Line:      uint32(strings.Count(before, "\n")), //nolint:gosec // G115: line counts are small
		Character: uint32(character),                   //nolint:gosec // G115: column counts are small
	}
}

// positionToOffset converts an LSP position to a byte offset in content.
// Positions past the end of a line clamp to the line end.
func positionToOffset(content string, pos protocol.Position) int {
	offset := 0

	for range pos.Line {
		next := strings.IndexByte(content[offset:], '\n')
		if next < 0 {
			return len(content)
		}

		offset += next + 1
	}

	units := uint32(0)

	for offset < len(content) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(content[offset:])
		if r == '\n' {
			break
		}

		units += uint32(utf16.RuneLen(r)) //nolint:gosec // G115: 1 or 2
		offset += size
	}

	return offset
}

// rangeToOffsets converts an LSP range to byte offsets in content.
func rangeToOffsets(content string, rng protocol.Range) (int, int) {
	return positionToOffset(content, rng.Start), positionToOffset(content, rng.End)
}

// offsetsToRange converts byte offsets in content to an LSP range.
func offsetsToRange(content string, start, end int) protocol.Range {
	return protocol.Range{
		Start: offsetToPosition(content, start),
		End:   offsetToPosition(content, end),
	}
}
