// Package project locates and parses Squall project configuration. The
// resolver walks upward from a directory to the nearest squall.toml and
// produces fully resolved compiler options; a missing file is the
// normal case and yields the defaults.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"github.com/dshills/squall/internal/squall"
)

// ConfigName is the configuration file the resolver searches for.
const ConfigName = "squall.toml"

// maxExtendsDepth bounds extends chains so a cycle terminates.
const maxExtendsDepth = 8

// fileConfig mirrors the on-disk TOML shape. Pointer fields distinguish
// "absent" from a zero value so child files only override what they set.
type fileConfig struct {
	Extends    string   `toml:"extends"`
	Target     *string  `toml:"target"`
	Module     *string  `toml:"module"`
	Resolution *string  `toml:"resolution"`
	Strict     *bool    `toml:"strict"`
	AllowLoose *bool    `toml:"allow_loose"`
	Libs       []string `toml:"libs"`
}

// Resolve returns the effective compiler options for code rooted at
// dir. It finds the nearest ConfigName walking upward from dir, expands
// its extends chain base-first, and overlays each file onto the default
// options. When no configuration file exists anywhere above dir the
// defaults are returned with no error.
func Resolve(dir string) (squall.Options, error) {
	path, found := Locate(dir)
	if !found {
		return squall.DefaultOptions(), nil
	}

	chain, err := loadChain(path, maxExtendsDepth)
	if err != nil {
		return squall.Options{}, err
	}

	opts := squall.DefaultOptions()
	for _, link := range chain {
		if err := link.cfg.apply(&opts); err != nil {
			return squall.Options{}, &ParseError{Path: link.path, Err: err}
		}
	}
	return opts, nil
}

// Locate returns the path of the nearest ConfigName at or above dir.
func Locate(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, ConfigName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type chainLink struct {
	path string
	cfg  *fileConfig
}

// loadChain reads the file at path and every file its extends key names,
// returning them base-first so later entries override earlier ones.
func loadChain(path string, depth int) ([]chainLink, error) {
	if depth <= 0 {
		return nil, &ParseError{Path: path, Err: ErrExtendsDepth}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// The nearest file was located but cannot be read; surface it
		// rather than silently falling back to defaults.
		return nil, &ParseError{Path: path, Err: zerr.Wrap(err, "read config")}
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if cfg.Extends == "" {
		return []chainLink{{path: path, cfg: &cfg}}, nil
	}

	parent := cfg.Extends
	if !filepath.IsAbs(parent) {
		parent = filepath.Join(filepath.Dir(path), parent)
	}
	base, err := loadChain(parent, depth-1)
	if err != nil {
		return nil, err
	}
	return append(base, chainLink{path: path, cfg: &cfg}), nil
}

// apply overlays the file's set fields onto opts.
func (c *fileConfig) apply(opts *squall.Options) error {
	if c.Target != nil {
		t, err := parseTarget(*c.Target)
		if err != nil {
			return err
		}
		opts.Target = t
	}
	if c.Module != nil {
		m, err := parseModule(*c.Module)
		if err != nil {
			return err
		}
		opts.Module = m
	}
	if c.Resolution != nil {
		r, err := parseResolution(*c.Resolution)
		if err != nil {
			return err
		}
		opts.ModuleResolution = r
	}
	if c.Strict != nil {
		opts.Strict = *c.Strict
	}
	if c.AllowLoose != nil {
		opts.AllowLoose = *c.AllowLoose
	}
	if c.Libs != nil {
		libs := make([]string, len(c.Libs))
		copy(libs, c.Libs)
		opts.Libs = libs
	}
	return nil
}

func parseTarget(s string) (squall.Target, error) {
	switch s {
	case "sq1":
		return squall.TargetSQ1, nil
	case "sq2":
		return squall.TargetSQ2, nil
	default:
		return 0, fmt.Errorf("unknown target %q", s)
	}
}

func parseModule(s string) (squall.ModuleKind, error) {
	switch s {
	case "none":
		return squall.ModuleNone, nil
	case "host":
		return squall.ModuleHost, nil
	default:
		return 0, fmt.Errorf("unknown module kind %q", s)
	}
}

func parseResolution(s string) (squall.ModuleResolution, error) {
	switch s {
	case "loose":
		return squall.ResolutionLoose, nil
	case "strict":
		return squall.ResolutionStrict, nil
	default:
		return 0, fmt.Errorf("unknown module resolution %q", s)
	}
}
