// Package config loads program2mass settings from TOML or YAML files.
//
// The file format is chosen by extension: .yaml and .yml are read as YAML,
// everything else as TOML. Every field is optional; missing values keep
// the package defaults returned by [Defaults].
//
//	[solver]
//	unit = 50
//	min_wall = 120
//
//	[catalog.bathroom]
//	ratios = [{ length = 2, width = 1 }]
//	aspect = { min = 0.4, max = 2.2 }
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gduarte0/program2mass/pkg/dimension"
	perrors "github.com/gduarte0/program2mass/pkg/errors"
	"github.com/gduarte0/program2mass/pkg/massing"
	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
)

// Config is the on-disk configuration.
type Config struct {
	Strategy  string    `toml:"strategy" yaml:"strategy"`
	Solver    Solver    `toml:"solver" yaml:"solver"`
	MultiPass MultiPass `toml:"multipass" yaml:"multipass"`
	Module    Module    `toml:"module" yaml:"module"`
	Ingest    Ingest    `toml:"ingest" yaml:"ingest"`
	Massing   Massing   `toml:"massing" yaml:"massing"`
	// Overrides is keyed by room type name (bedroom, kitchen, ...).
	Overrides map[string]ProfileOverride `toml:"catalog,omitempty" yaml:"catalog,omitempty"`
	Cache     Cache                      `toml:"cache" yaml:"cache"`
	Store     Store                      `toml:"store" yaml:"store"`
	Server    Server                     `toml:"server" yaml:"server"`
}

// Solver configures the ratio-constrained solver.
type Solver struct {
	Unit    int `toml:"unit" yaml:"unit"`
	MinWall int `toml:"min_wall" yaml:"min_wall"`
}

// MultiPass configures the multi-pass optimizer.
type MultiPass struct {
	Passes           int     `toml:"passes" yaml:"passes"`
	ToleranceStart   float64 `toml:"tolerance_start" yaml:"tolerance_start"`
	ToleranceStep    float64 `toml:"tolerance_step" yaml:"tolerance_step"`
	TopK             int     `toml:"top_k" yaml:"top_k"`
	Threshold        float64 `toml:"threshold" yaml:"threshold"`
	ClusterTolerance int     `toml:"cluster_tolerance" yaml:"cluster_tolerance"`
}

// Module configures the grid module search.
type Module struct {
	// Bands left empty are derived from the solver's min_wall.
	Bands   []optimize.Band `toml:"bands,omitempty" yaml:"bands,omitempty"`
	Default int             `toml:"default" yaml:"default"`
}

// Ingest configures CSV ingestion.
type Ingest struct {
	IncludeCirculation bool    `toml:"include_circulation" yaml:"include_circulation"`
	SmallRoomArea      float64 `toml:"small_room_m2" yaml:"small_room_m2"`
}

// Massing configures the box layout.
type Massing struct {
	Spacing int `toml:"spacing" yaml:"spacing"`
	Height  int `toml:"height" yaml:"height"`
}

// ProfileOverride replaces parts of one catalog profile. Empty fields keep
// the default profile's value.
type ProfileOverride struct {
	Keywords []string     `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	Ratios   []room.Ratio `toml:"ratios,omitempty" yaml:"ratios,omitempty"`
	Aspect   *room.Bounds `toml:"aspect,omitempty" yaml:"aspect,omitempty"`
	Category string       `toml:"category,omitempty" yaml:"category,omitempty"`
}

// Cache configures the result cache.
type Cache struct {
	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir,omitempty" yaml:"dir,omitempty"`
	// RedisURL selects a shared Redis cache instead of files.
	RedisURL string `toml:"redis_url,omitempty" yaml:"redis_url,omitempty"`
}

// Store configures run persistence.
type Store struct {
	// URI is memory:, sqlite://<path> or mongodb://...
	URI string `toml:"uri,omitempty" yaml:"uri,omitempty"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// DefaultAddr is the HTTP listen address.
const DefaultAddr = ":8080"

// Defaults returns the configuration equivalent to an empty file.
func Defaults() Config {
	return Config{
		Strategy: pipeline.DefaultStrategy,
		Solver: Solver{
			Unit:    dimension.DefaultUnit,
			MinWall: dimension.DefaultMinWall,
		},
		MultiPass: MultiPass{
			Passes:           optimize.DefaultPasses,
			ToleranceStart:   optimize.DefaultToleranceStart,
			ToleranceStep:    optimize.DefaultToleranceStep,
			TopK:             optimize.DefaultTopK,
			Threshold:        optimize.DefaultThreshold,
			ClusterTolerance: optimize.DefaultClusterTolerance,
		},
		Module:  Module{Default: optimize.DefaultModule},
		Ingest:  Ingest{SmallRoomArea: pipeline.DefaultSmallRoomArea},
		Massing: Massing{Spacing: massing.DefaultSpacing, Height: massing.DefaultHeight},
		Server:  Server{Addr: DefaultAddr},
	}
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := Decode(data, isYAML(path), &cfg); err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if _, err := cfg.Catalog(); err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "catalog in %s", path)
	}
	return cfg, nil
}

// LoadOrDefault loads path, returning the defaults when it does not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if perrors.Is(err, perrors.ErrCodeFileNotFound) {
		return Defaults(), nil
	}
	return cfg, err
}

// Decode parses data into cfg. Keys absent from data leave cfg unchanged.
func Decode(data []byte, asYAML bool, cfg *Config) error {
	if asYAML {
		return yaml.Unmarshal(data, cfg)
	}
	_, err := toml.Decode(string(data), cfg)
	return err
}

// Encode serializes cfg in the format chosen by path's extension.
func Encode(cfg Config, path string) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves cfg to path, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func Write(cfg Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return perrors.New(perrors.ErrCodeInvalidConfig, "config file already exists: %s", path)
		}
	}
	data, err := Encode(cfg, path)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Catalog merges the overrides into the default catalog.
func (c Config) Catalog() (*room.Catalog, error) {
	if len(c.Overrides) == 0 {
		return room.DefaultCatalog(), nil
	}
	base := room.DefaultCatalog()
	profiles := make(map[room.Type]room.Profile, len(c.Overrides))
	for name, o := range c.Overrides {
		t, err := room.ParseType(name)
		if err != nil {
			return nil, err
		}
		p := base.Profile(t)
		if o.Keywords != nil {
			p.Keywords = o.Keywords
		}
		if len(o.Ratios) > 0 {
			p.Ratios = o.Ratios
		}
		if o.Aspect != nil {
			p.Aspect = *o.Aspect
		}
		if o.Category != "" {
			p.Category = room.Category(o.Category)
		}
		profiles[t] = p
	}
	return room.NewCatalog(profiles)
}

// Options converts the configuration into pipeline options.
func (c Config) Options() (pipeline.Options, error) {
	cat, err := c.Catalog()
	if err != nil {
		return pipeline.Options{}, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "catalog")
	}
	return pipeline.Options{
		Strategy:           c.Strategy,
		Unit:               c.Solver.Unit,
		MinWall:            c.Solver.MinWall,
		Passes:             c.MultiPass.Passes,
		ToleranceStart:     c.MultiPass.ToleranceStart,
		ToleranceStep:      c.MultiPass.ToleranceStep,
		TopK:               c.MultiPass.TopK,
		Threshold:          c.MultiPass.Threshold,
		ClusterTolerance:   c.MultiPass.ClusterTolerance,
		Bands:              c.Module.Bands,
		DefaultModule:      c.Module.Default,
		IncludeCirculation: c.Ingest.IncludeCirculation,
		SmallRoomArea:      c.Ingest.SmallRoomArea,
		Spacing:            c.Massing.Spacing,
		Height:             c.Massing.Height,
		Catalog:            cat,
	}, nil
}
