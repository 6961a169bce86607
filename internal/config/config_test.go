package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	want := filepath.Join("/custom/config", "mappy")
	if dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}

	path, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath() error = %v", err)
	}
	if path != filepath.Join(want, "maps.db") {
		t.Errorf("DefaultDBPath() = %q, want %q", path, filepath.Join(want, "maps.db"))
	}
}

func TestConfigDir_PlatformDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	base, err := os.UserConfigDir()
	if err != nil {
		t.Skip("no platform config directory")
	}
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(base, AppDir); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestLoad_NotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	data := []byte("db_path: ~/stash/maps.db\n")
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if want := filepath.Join(home, "stash/maps.db"); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("db_path: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestResolveDBPath_Precedence(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(DBEnvVar, "")

	appDir := filepath.Join(xdg, AppDir)

	// Default
	got, err := ResolveDBPath("")
	if err != nil {
		t.Fatalf("ResolveDBPath() error = %v", err)
	}
	if want := filepath.Join(appDir, DBFile); got != want {
		t.Errorf("default: got %q, want %q", got, want)
	}

	// Config file
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(appDir, ConfigFile), []byte("db_path: /from/config.db\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, _ = ResolveDBPath("")
	if got != "/from/config.db" {
		t.Errorf("config: got %q, want /from/config.db", got)
	}

	// Environment beats config
	t.Setenv(DBEnvVar, "/from/env.db")
	got, _ = ResolveDBPath("")
	if got != "/from/env.db" {
		t.Errorf("env: got %q, want /from/env.db", got)
	}

	// Flag beats everything
	got, _ = ResolveDBPath("/from/flag.db")
	if got != "/from/flag.db" {
		t.Errorf("flag: got %q, want /from/flag.db", got)
	}
}

func TestEnsureDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", DBFile)

	if err := EnsureDir(dbPath); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(dbPath))
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}

	// Existing directory is fine
	if err := EnsureDir(dbPath); err != nil {
		t.Errorf("second EnsureDir() error = %v", err)
	}
}

func TestEnsureDir_ParentIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := EnsureDir(filepath.Join(file, "sub", DBFile))
	if !errors.Is(err, ErrDirCreate) {
		t.Errorf("EnsureDir() error = %v, want ErrDirCreate", err)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x/y", filepath.Join(home, "x/y")},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~user/x", "~user/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
