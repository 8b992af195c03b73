package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ManifestPath != "manifest.json" {
		t.Fatalf("ManifestPath = %q", cfg.ManifestPath)
	}
	if cfg.AlbumsDir != "albums" {
		t.Fatalf("AlbumsDir = %q", cfg.AlbumsDir)
	}
	if cfg.DefaultSort != "added_descending" {
		t.Fatalf("DefaultSort = %q", cfg.DefaultSort)
	}
	if cfg.Volume != 0.8 {
		t.Fatalf("Volume = %v", cfg.Volume)
	}
}

func TestLoadLocalConfig(t *testing.T) {
	dir := isolate(t)
	toml := `manifest_path = "https://example.com/manifest.json"
albums_dir = "/srv/music/albums"
default_sort = "title_ascending"
volume = 0.5
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ManifestPath != "https://example.com/manifest.json" {
		t.Fatalf("ManifestPath = %q", cfg.ManifestPath)
	}
	if cfg.AlbumsDir != "/srv/music/albums" {
		t.Fatalf("AlbumsDir = %q", cfg.AlbumsDir)
	}
	if cfg.DefaultSort != "title_ascending" {
		t.Fatalf("DefaultSort = %q", cfg.DefaultSort)
	}
	if cfg.Volume != 0.5 {
		t.Fatalf("Volume = %v", cfg.Volume)
	}
}

func TestLoadLocalOverridesHome(t *testing.T) {
	dir := isolate(t)
	home := os.Getenv("HOME")
	confDir := filepath.Join(home, ".config", "spotifai")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(`volume = 0.2`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`volume = 0.9`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Volume != 0.9 {
		t.Fatalf("Volume = %v, want local override 0.9", cfg.Volume)
	}
}

func TestLoadVolumeOutOfRange(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`volume = 4.2`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Volume != 0.8 {
		t.Fatalf("Volume = %v, want clamped default", cfg.Volume)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/me")
	if got := expandPath("~/music/albums"); got != "/home/me/music/albums" {
		t.Fatalf("expandPath = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Fatalf("expandPath left absolute path alone, got %q", got)
	}
}
