package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	perrors "github.com/gduarte0/program2mass/pkg/errors"
	"github.com/gduarte0/program2mass/pkg/room"
)

func TestDefaultsRoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Write(Defaults(), path, false); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, Defaults()) {
				t.Errorf("round trip = %+v\nwant %+v", got, Defaults())
			}
		})
	}
}

func TestWriteRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Write(Defaults(), path, false); err != nil {
		t.Fatal(err)
	}
	if err := Write(Defaults(), path, false); err == nil {
		t.Error("second write should fail without force")
	}
	if err := Write(Defaults(), path, true); err != nil {
		t.Errorf("forced write: %v", err)
	}
}

func TestLoadPartialTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
strategy = "module"

[solver]
unit = 25

[catalog.bathroom]
ratios = [{ length = 2, width = 1 }]
aspect = { min = 0.4, max = 2.2 }
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Strategy != "module" || cfg.Solver.Unit != 25 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Solver.MinWall != 120 || cfg.MultiPass.Passes != 3 {
		t.Errorf("defaults lost: %+v", cfg)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Strategy != "module" || opts.Unit != 25 {
		t.Errorf("options = %+v", opts)
	}
	if got := opts.Catalog.Ratios(room.Bathroom); !reflect.DeepEqual(got, []room.Ratio{{Length: 2, Width: 1}}) {
		t.Errorf("bathroom ratios = %v", got)
	}
	if got := opts.Catalog.Aspect(room.Bathroom); got.Max != 2.2 {
		t.Errorf("bathroom aspect = %v", got)
	}
	// Untouched fields keep the default profile.
	if opts.Catalog.Category(room.Bathroom) != room.Private || opts.Catalog.Classify("WC") != room.Bathroom {
		t.Error("override dropped default profile fields")
	}
}

func TestLoadMinWallMovesModuleBands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[solver]\nmin_wall = 160\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Bands) == 0 || opts.Bands[0].From != 160 {
		t.Errorf("bands = %+v, want first band from 160", opts.Bands)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
multipass:
  passes: 5
catalog:
  office:
    category: public
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MultiPass.Passes != 5 || cfg.MultiPass.TopK != 6 {
		t.Errorf("multipass = %+v", cfg.MultiPass)
	}
	cat, err := cfg.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if cat.Category(room.Office) != room.Public {
		t.Errorf("office category = %s", cat.Category(room.Office))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml")); err != nil || cfg.Server.Addr != DefaultAddr {
		t.Errorf("LoadOrDefault = %+v, %v", cfg, err)
	}

	tests := map[string]string{
		"syntax.toml":   "strategy = ",
		"type.toml":     "[catalog.garage]\ncategory = \"service\"\n",
		"category.toml": "[catalog.office]\ncategory = \"outdoor\"\n",
		"ratio.toml":    "[catalog.office]\nratios = [{ length = 0, width = 1 }]\n",
	}
	for name, data := range tests {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
			t.Errorf("%s: error = %v", name, err)
		}
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	if p, _ := Path(); p != "/tmp/xdg-config/program2mass/config.toml" {
		t.Errorf("Path() = %s", p)
	}
	if d, _ := CacheDir(); d != "/tmp/xdg-cache/program2mass" {
		t.Errorf("CacheDir() = %s", d)
	}
	if u, _ := DefaultStoreURI(); u != "sqlite:///tmp/xdg-data/program2mass/runs.db" {
		t.Errorf("DefaultStoreURI() = %s", u)
	}
}
