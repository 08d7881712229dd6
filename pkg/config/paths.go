package config

import (
	"os"
	"path/filepath"
)

// AppName names the XDG directories.
const AppName = "program2mass"

// Dir returns the config directory (~/.config/program2mass/).
func Dir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// CacheDir returns the cache directory (~/.cache/program2mass/).
func CacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// DataDir returns the data directory (~/.local/share/program2mass/).
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultStoreURI returns the SQLite database in the data directory.
func DefaultStoreURI() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return "sqlite://" + filepath.Join(dir, "runs.db"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if home := os.Getenv(env); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}
