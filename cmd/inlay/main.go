// Package main provides the inlay CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	// Register languages.
	_ "github.com/rlch/inlay/language/go"
)

var version = "dev"

func main() {
	err := newApp().Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "inlay",
		Version: version,
		Usage:   "Show inferred types of declarations as inlay hints",
		Commands: []*cli.Command{
			hintsCommand(),
			annotateCommand(),
		},
	}
}
