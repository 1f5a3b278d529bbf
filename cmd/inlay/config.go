package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/rlch/inlay"
)

var errUnknownLoader = errors.New("unknown loader")

// settingsFlags are shared by every command that builds hints.
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file to use instead of the nearest .inlay.yaml",
		},
		&cli.BoolFlag{
			Name:  "space-before-colon",
			Usage: "put a space before the type colon",
		},
		&cli.BoolFlag{
			Name:  "space-after-colon",
			Value: true,
			Usage: "put a space after the type colon",
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "drop hints matching an expression over name, kind and typeName",
		},
		&cli.StringFlag{
			Name:  "loader",
			Usage: "type-checking strategy: packages or file",
		},
	}
}

// loadConfig resolves the project config for args, then applies flag overrides.
func loadConfig(cmd *cli.Command, args []string) (*inlay.Config, error) {
	var (
		cfg *inlay.Config
		err error
	)

	if path := cmd.String("config"); path != "" {
		cfg, err = inlay.LoadConfigFile(path)
	} else {
		cfg, err = inlay.LoadConfigOrDefault(configDir(args))
	}

	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	style := cfg.StyleOrDefault()

	if cmd.IsSet("space-before-colon") {
		style.SpaceBeforeTypeColon = cmd.Bool("space-before-colon")
	}

	if cmd.IsSet("space-after-colon") {
		style.SpaceAfterTypeColon = cmd.Bool("space-after-colon")
	}

	cfg.Style = &style

	if cmd.IsSet("exclude") {
		cfg.Exclude = append(slices.Clone(cfg.Exclude), cmd.StringSlice("exclude")...)
	}

	if cmd.IsSet("loader") {
		cfg.Loader = cmd.String("loader")
	}

	switch cfg.LoaderOrDefault() {
	case inlay.LoaderPackages, inlay.LoaderFile:
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownLoader, cfg.Loader)
	}

	return cfg, nil
}

// configDir is where the config search starts: the first argument's
// directory, or the working directory.
func configDir(args []string) string {
	if len(args) == 0 {
		return "."
	}

	info, err := os.Stat(args[0])
	if err == nil && info.IsDir() {
		return args[0]
	}

	return filepath.Dir(args[0])
}
