package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/csheth/akesi/internal/settings"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "akesi.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// chdir moves into a fresh directory so DefaultPath does not resolve to a
// file in the package directory.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

const validYAML = `
log:
  level: "debug"
  format: "json"
  file: "/tmp/akesi.log"

reader:
  stories: "stories.yaml"
  auto_bracket: true
  memo_size: 64

display:
  render: "sitelen_pona"
  use_ucsur: true
  font: "Fairfax Pona HD"
  show_hints: true
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Log.File != "/tmp/akesi.log" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Reader.StoriesPath != "stories.yaml" || !cfg.Reader.AutoBracket || cfg.Reader.MemoSize != 64 {
		t.Errorf("reader = %+v", cfg.Reader)
	}

	rs, err := cfg.Display.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	want := settings.Render{Mode: settings.ModeScript, UseUCSUR: true, ScriptFont: "Fairfax Pona HD", ShowHints: true}
	if rs != want {
		t.Errorf("settings = %+v, want %+v", rs, want)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("AKESI_MEMO_SIZE", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Reader.MemoSize != 8 {
		t.Errorf("memo size = %d, want 8", cfg.Reader.MemoSize)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Reader.MemoSize != 512 || cfg.Reader.AutoBracket || cfg.Reader.StoriesPath != "" {
		t.Errorf("reader = %+v", cfg.Reader)
	}
	if cfg.Reader.NoCache || cfg.Reader.CacheTTL != 168*time.Hour {
		t.Errorf("no_cache = %v ttl %s", cfg.Reader.NoCache, cfg.Reader.CacheTTL)
	}
	if cfg.Reader.Pretokenize {
		t.Error("pretokenize should be off by default")
	}
	rs, err := cfg.Display.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if rs != settings.Default() {
		t.Errorf("settings = %+v, want %+v", rs, settings.Default())
	}
}

func TestLoad_DefaultPathUsedWhenPresent(t *testing.T) {
	dir := chdir(t)
	writeYAML(t, dir, "reader:\n  memo_size: 3\n  no_cache: true\n  cache_ttl: 2h\n  pretokenize: true\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reader.MemoSize != 3 {
		t.Errorf("memo size = %d, want 3", cfg.Reader.MemoSize)
	}
	if !cfg.Reader.NoCache || cfg.Reader.CacheTTL != 2*time.Hour {
		t.Errorf("no_cache = %v ttl %s", cfg.Reader.NoCache, cfg.Reader.CacheTTL)
	}
	if !cfg.Reader.Pretokenize {
		t.Error("pretokenize from yaml not applied")
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		Reader:  ReaderConfig{MemoSize: 1},
		Display: DisplayConfig{Render: "latin", Font: settings.DefaultFont},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "negative memo", mutate: func(c *Config) { c.Reader.MemoSize = -1 }, wantErr: "memo_size"},
		{name: "negative ttl", mutate: func(c *Config) { c.Reader.CacheTTL = -time.Second }, wantErr: "cache_ttl"},
		{name: "bad render", mutate: func(c *Config) { c.Display.Render = "braille" }, wantErr: "render mode"},
		{name: "unknown font", mutate: func(c *Config) { c.Display.Font = "comic" }, wantErr: "unknown font"},
		{name: "font without ucsur", mutate: func(c *Config) {
			c.Display.Font = "linja pona"
			c.Display.UseUCSUR = true
		}, wantErr: "cannot display UCSUR"},
		{name: "empty font uses default", mutate: func(c *Config) { c.Display.Font = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
