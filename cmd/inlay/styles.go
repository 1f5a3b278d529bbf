package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	colorDim    = lipgloss.Color("#6b7280") // gray-500
	colorAccent = lipgloss.Color("#3b82f6") // blue-500
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// Styles holds the lipgloss styles for annotated output.
type Styles struct {
	Hint lipgloss.Style
	Path lipgloss.Style
}

// DefaultStyles returns styles drawing through renderer.
func DefaultStyles(renderer *lipgloss.Renderer) *Styles {
	return &Styles{
		Hint: renderer.NewStyle().Foreground(colorDim).Italic(true),
		Path: renderer.NewStyle().Foreground(colorAccent).Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	return &Styles{
		Hint: lipgloss.NewStyle(),
		Path: lipgloss.NewStyle(),
	}
}

// stylesFor picks styles for w according to a --color mode.
func stylesFor(w io.Writer, mode string) (*Styles, error) {
	switch mode {
	case colorNever:
		return PlainStyles(), nil
	case colorAlways:
		renderer := lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.ANSI256)

		return DefaultStyles(renderer), nil
	case colorAuto, "":
		if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
			return PlainStyles(), nil
		}

		return DefaultStyles(lipgloss.NewRenderer(w)), nil
	default:
		return nil, fmt.Errorf("unknown color mode %q", mode)
	}
}
