package main

import (
	"context"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rlch/inlay"
)

func annotateCommand() *cli.Command {
	return &cli.Command{
		Name:      "annotate",
		Usage:     "Print Go files with their type hints inlined",
		ArgsUsage: "[files or directories...]",
		Flags: append(settingsFlags(),
			&cli.StringFlag{
				Name:  "color",
				Value: colorAuto,
				Usage: "colorize hints: auto, always or never",
			},
		),
		Action: runAnnotate,
	}
}

func runAnnotate(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return cli.Exit("annotate needs at least one file or directory", 1)
	}

	out := cmd.Root().Writer

	styles, err := stylesFor(out, cmd.String("color"))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	results, err := analyzeArgs(ctx, args, cfg)
	if err != nil {
		return err
	}

	printAnnotated(out, results, styles)

	return nil
}

func printAnnotated(out io.Writer, results []fileResult, styles *Styles) {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				_, _ = io.WriteString(out, "\n")
			}

			_, _ = io.WriteString(out, styles.Path.Render("==> "+r.Path+" <==")+"\n")
		}

		_, _ = io.WriteString(out, annotate(r.Content, r.Hints, styles))
	}
}

// annotate returns content with each hint label inserted at its offset.
// Hints must be sorted by offset.
func annotate(content []byte, hints []inlay.Hint, styles *Styles) string {
	var b strings.Builder

	last := 0

	for _, h := range hints {
		offset := min(max(h.Offset, last), len(content))
		b.Write(content[last:offset])

		_, label := inlay.Classify(h)
		b.WriteString(styles.Hint.Render(label))

		last = offset
	}

	b.Write(content[last:])

	return b.String()
}
