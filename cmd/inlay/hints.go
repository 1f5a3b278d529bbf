package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v3"

	"github.com/rlch/inlay"
	"github.com/rlch/inlay/language"
	golang "github.com/rlch/inlay/language/go"
)

var errNoGoFiles = errors.New("no .go files found")

func hintsCommand() *cli.Command {
	return &cli.Command{
		Name:      "hints",
		Usage:     "Print the type hints of Go files",
		ArgsUsage: "[files or directories...]",
		Flags: append(settingsFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print hints as a JSON array",
			},
			&cli.BoolFlag{
				Name:    "diagnostics",
				Aliases: []string{"d"},
				Usage:   "also print type-checking problems to stderr",
			},
		),
		Action: runHints,
	}
}

func runHints(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	results, err := analyzeArgs(ctx, args, cfg)
	if err != nil {
		return err
	}

	if cmd.Bool("diagnostics") {
		printDiagnostics(cmd.Root().ErrWriter, results)
	}

	if cmd.Bool("json") {
		return printJSON(cmd.Root().Writer, results)
	}

	printHints(cmd.Root().Writer, results)

	return nil
}

// fileResult holds the hints of one analyzed file.
type fileResult struct {
	Path        string
	Content     []byte
	Hints       []inlay.Hint
	Diagnostics []language.Diagnostic
}

// analyzeArgs analyzes every Go file named by args. With the packages
// loader, a directory argument is loaded with a single go/packages query;
// directories the go tool cannot load are analyzed file by file.
func analyzeArgs(ctx context.Context, args []string, cfg *inlay.Config) ([]fileResult, error) {
	settings, err := inlay.NewSettings(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		results []fileResult
		files   []string
	)

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if info.IsDir() && cfg.LoaderOrDefault() == inlay.LoaderPackages {
			tree, err := loadTree(ctx, arg, settings)
			if err == nil && len(tree) > 0 {
				results = append(results, tree...)

				continue
			}
		}

		found, err := collectFiles([]string{arg})
		if err != nil {
			return nil, err
		}

		files = append(files, found...)
	}

	analyzed, err := analyzeFiles(ctx, files, cfg.LoaderOrDefault(), settings)
	if err != nil {
		return nil, err
	}

	results = append(results, analyzed...)
	if len(results) == 0 {
		return nil, errNoGoFiles
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return slices.CompactFunc(results, func(a, b fileResult) bool {
		return a.Path == b.Path
	}), nil
}

// loadTree type-checks every package under dir at once. Files compiled from
// outside dir, such as cgo output, are skipped.
func loadTree(ctx context.Context, dir string, settings *inlay.Settings) ([]fileResult, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	loaded, err := (&golang.PackageLoader{}).LoadPackages(ctx, root, "./...")
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, 0, len(loaded))

	for _, f := range loaded {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}

		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, err
		}

		results = append(results, fileResult{
			Path:        filepath.Join(dir, rel),
			Content:     data,
			Hints:       language.Hints(f, settings, settings.Filter()),
			Diagnostics: f.Diagnostics(),
		})
	}

	return results, nil
}

func analyzeFiles(ctx context.Context, files []string, loader string, settings *inlay.Settings) ([]fileResult, error) {
	results := make([]fileResult, 0, len(files))

	for _, file := range files {
		data, err := os.ReadFile(file) //#nosec G304 -- paths come from user args
		if err != nil {
			return nil, err
		}

		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}

		unit, err := language.Analyze(ctx, language.Request{
			Path:    abs,
			Content: data,
			Loader:  loader,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		results = append(results, fileResult{
			Path:        file,
			Content:     data,
			Hints:       language.Hints(unit, settings, settings.Filter()),
			Diagnostics: unit.Diagnostics(),
		})
	}

	return results, nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		// Walk directory for .go files, skipping vendored and hidden trees.
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != arg && skipDir(d.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if strings.HasSuffix(path, ".go") {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// lineCol returns the 1-based line and byte column of offset.
func lineCol(content []byte, offset int) (int, int) {
	offset = min(max(offset, 0), len(content))
	before := content[:offset]
	lineStart := strings.LastIndexByte(string(before), '\n') + 1

	return strings.Count(string(before), "\n") + 1, offset - lineStart + 1
}

func printHints(out io.Writer, results []fileResult) {
	for _, r := range results {
		for _, h := range r.Hints {
			line, col := lineCol(r.Content, h.Offset)
			_, label := inlay.Classify(h)
			_, _ = fmt.Fprintf(out, "%s:%d:%d: %s\n", r.Path, line, col, label)
		}
	}
}

func printDiagnostics(out io.Writer, results []fileResult) {
	for _, r := range results {
		for _, d := range r.Diagnostics {
			line, col := lineCol(r.Content, d.Start)
			_, _ = fmt.Fprintf(out, "%s:%d:%d: %s\n", r.Path, line, col, d.Message)
		}
	}
}

// jsonHint is the --json output record.
type jsonHint struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Type   string `json:"type,omitempty"`
}

func printJSON(out io.Writer, results []fileResult) error {
	records := []jsonHint{}

	for _, r := range results {
		for _, h := range r.Hints {
			line, col := lineCol(r.Content, h.Offset)
			kind, label := inlay.Classify(h)
			records = append(records, jsonHint{
				File:   r.Path,
				Line:   line,
				Column: col,
				Offset: h.Offset,
				Kind:   kind.String(),
				Label:  label,
				Type:   h.Type,
			})
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(records)
}
