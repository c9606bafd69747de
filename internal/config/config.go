package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"stylekit/internal/diag"
	"stylekit/internal/prefix"
	"stylekit/internal/trace"
	"stylekit/internal/writer"
)

// FileNames are the recognised configuration files, in lookup order.
var FileNames = []string{"stylekit.toml", "stylekit.yaml", "stylekit.yml"}

type Prefixer struct {
	Enabled   bool `toml:"enabled" yaml:"enabled"`
	Rearrange bool `toml:"rearrange" yaml:"rearrange"`
	Prune     bool `toml:"prune" yaml:"prune"`
}

type Validators struct {
	// SelectorDepth limits selector parts; 0 disables the check.
	SelectorDepth int  `toml:"selector_depth" yaml:"selector_depth"`
	Duplicates    bool `toml:"duplicates" yaml:"duplicates"`
}

type Trace struct {
	Level  string `toml:"level" yaml:"level"`
	Output string `toml:"output" yaml:"output"`
}

// Config is the processing configuration.
type Config struct {
	Mode       string     `toml:"mode" yaml:"mode"`
	AutoRefine bool       `toml:"auto_refine" yaml:"auto_refine"`
	MaxDepth   int        `toml:"max_depth" yaml:"max_depth"`
	Support    []string   `toml:"-" yaml:"-"`
	Prefixer   Prefixer   `toml:"prefixer" yaml:"prefixer"`
	Validators Validators `toml:"validators" yaml:"validators"`
	Trace      Trace      `toml:"trace" yaml:"trace"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type support struct {
	Browsers []string `toml:"browsers" yaml:"browsers"`
}

// file mirrors the on-disk layout: support entries live in [support].
type file struct {
	Config  `yaml:",inline"`
	Support support `toml:"support" yaml:"support"`
}

// Default is used when no file is found.
func Default() Config {
	return Config{
		Mode:       writer.Verbose.String(),
		AutoRefine: true,
		Prefixer:   Prefixer{Enabled: true},
		Trace:      Trace{Level: "off", Output: "stderr"},
	}
}

// Load reads a configuration file; the format follows the extension.
func Load(path string) (Config, error) {
	f := file{Config: Default()}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return Config{}, unreadable(path, err)
		}
	case ".yaml", ".yml":
		// #nosec G304 -- path is provided by the caller
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, unreadable(path, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Config{}, unreadable(path, err)
		}
	default:
		return Config{}, diag.NewConfigError(diag.CfgUnreadable, path, "unsupported configuration format")
	}
	cfg := f.Config
	cfg.Support = f.Support.Browsers
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func unreadable(path string, err error) error {
	return fmt.Errorf("%w: %w", diag.NewConfigError(diag.CfgUnreadable, path, ""), err)
}

// FindConfig walks up from startDir to locate a configuration file.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest configuration above startDir, or Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks every field that can be checked without reference data.
func (c Config) Validate() error {
	if _, err := c.WriterMode(); err != nil {
		return err
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return diag.NewConfigError(diag.CfgBadMode, c.Path, "trace level: %v", err)
	}
	if c.MaxDepth < 0 {
		return diag.NewConfigError(diag.CfgInfo, c.Path, "max_depth must not be negative")
	}
	return nil
}

func (c Config) WriterMode() (writer.Mode, error) {
	return writer.ParseMode(c.Mode)
}

// Matrix builds the support matrix eagerly so configuration errors surface
// before anything is parsed. A nil data uses the embedded tables.
func (c Config) Matrix(data prefix.Lookup) (*prefix.SupportMatrix, error) {
	if data == nil {
		data = prefix.Default()
	}
	m, err := prefix.ParseSupport(data, c.Support)
	if err != nil {
		if c.Path != "" {
			return nil, fmt.Errorf("%s: %w", c.Path, err)
		}
		return nil, err
	}
	return m, nil
}
