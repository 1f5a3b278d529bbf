package inlay

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when no config file exists in dir or its parents.
var ErrConfigNotFound = errors.New("no inlay config file found")

// Loader names accepted in Config.Loader.
const (
	LoaderPackages = "packages"
	LoaderFile     = "file"
)

// Config represents the .inlay.yaml configuration file.
type Config struct {
	// Style controls spacing around the type colon.
	// Nil means DefaultStyle.
	Style *Style `yaml:"style,omitempty" json:"style,omitempty"`

	// Exclude lists filter expressions; matching hints are dropped.
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Loader selects how Go files are type-checked: "packages" loads the
	// enclosing package with the go tool, "file" checks the file alone.
	Loader string `yaml:"loader,omitempty" json:"loader,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".inlay.yaml", ".inlay.yml", "inlay.yaml", "inlay.yml"}

// StyleOrDefault returns the configured style, or DefaultStyle.
func (c *Config) StyleOrDefault() Style {
	if c == nil || c.Style == nil {
		return DefaultStyle()
	}

	return *c.Style
}

// LoaderOrDefault returns the configured loader, or LoaderPackages.
func (c *Config) LoaderOrDefault() string {
	if c == nil || c.Loader == "" {
		return LoaderPackages
	}

	return c.Loader
}

// UnmarshalYAML fills flags missing from the document with DefaultStyle.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	type plain Style

	p := plain(DefaultStyle())

	err := value.Decode(&p)
	if err != nil {
		return err
	}

	*s = Style(p)

	return nil
}

// LoadConfig finds and loads the nearest config file walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// LoadConfigOrDefault is LoadConfig, but a missing file yields an empty Config.
func LoadConfigOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, ErrConfigNotFound) {
		return &Config{}, nil
	}

	return cfg, err
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
