package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the player's settings.
type Config struct {
	ManifestPath string  `koanf:"manifest_path"` // path or http(s) URL of manifest.json
	AlbumsDir    string  `koanf:"albums_dir"`    // root of the album folders
	DefaultSort  string  `koanf:"default_sort"`  // initial album ordering
	Volume       float64 `koanf:"volume"`        // initial volume, 0.0 to 1.0
}

// Load reads configuration from the known config files, later files winning.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		ManifestPath: "manifest.json",
		AlbumsDir:    "albums",
		DefaultSort:  "added_descending",
		Volume:       0.8,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.ManifestPath = expandPath(cfg.ManifestPath)
	cfg.AlbumsDir = expandPath(cfg.AlbumsDir)
	if cfg.Volume < 0 || cfg.Volume > 1 {
		cfg.Volume = 0.8
	}
	return cfg, nil
}

func configPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "spotifai", "config.toml"))
	}
	// ./config.toml wins over the home config
	paths = append(paths, "config.toml")
	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
