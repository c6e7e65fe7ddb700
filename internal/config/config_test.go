package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"imgbatch/internal/config"
)

func TestLoadWithoutFileUsesCompiledDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "imgbatch", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if !filepath.IsAbs(cfg.Paths.SourceDir) || !strings.HasSuffix(cfg.Paths.SourceDir, "new hero section") {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}
	if !filepath.IsAbs(cfg.Paths.DestDir) {
		t.Fatalf("expected absolute dest dir, got %q", cfg.Paths.DestDir)
	}
	if cfg.Paths.LockFile != filepath.Join(tempHome, ".cache", "imgbatch", "imgbatch.lock") {
		t.Fatalf("unexpected lock file: %q", cfg.Paths.LockFile)
	}
	if cfg.Encoding.Encoder != config.EncoderNative {
		t.Fatalf("expected native encoder, got %q", cfg.Encoding.Encoder)
	}
	if cfg.Encoding.Quality == nil || *cfg.Encoding.Quality != 85 {
		t.Fatalf("expected default quality 85, got %v", cfg.Encoding.Quality)
	}
	if len(cfg.Entries) != len(config.DefaultEntries()) {
		t.Fatalf("expected %d default entries, got %d", len(config.DefaultEntries()), len(cfg.Entries))
	}
}

func TestDefaultEntriesFocalPointQuality(t *testing.T) {
	cfg := config.Default()
	var focal, general int
	for _, e := range cfg.Entries {
		switch cfg.EntryQuality(e) {
		case 90:
			focal++
			if e.Destination != "paper-a-new.webp" || e.MaxWidth != 1200 {
				t.Fatalf("unexpected focal entry: %+v", e)
			}
		case 85:
			general++
		default:
			t.Fatalf("unexpected quality for %s: %d", e.Destination, cfg.EntryQuality(e))
		}
	}
	if focal != 1 {
		t.Fatalf("expected exactly one focal entry, got %d", focal)
	}
	if general != len(cfg.Entries)-1 {
		t.Fatalf("expected remaining entries at quality 85, got %d", general)
	}
}

func TestLoadCustomPathReplacesEntries(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "imgbatch.toml")

	type payload struct {
		Paths struct {
			SourceDir string `toml:"source_dir"`
			DestDir   string `toml:"dest_dir"`
		} `toml:"paths"`
		Encoding struct {
			Quality int `toml:"quality"`
		} `toml:"encoding"`
		Entries []config.Entry `toml:"entries"`
	}
	custom := payload{}
	custom.Paths.SourceDir = filepath.Join(tempDir, "src")
	custom.Paths.DestDir = filepath.Join(tempDir, "out")
	custom.Encoding.Quality = 70
	custom.Entries = []config.Entry{
		{Source: " a.png ", Destination: "a.webp", MaxWidth: 640},
		{Source: "b.png", Destination: "b.webp", MaxWidth: 320, Quality: config.Quality(95)},
	}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.SourceDir != custom.Paths.SourceDir {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}
	if cfg.Encoding.Encoder != config.EncoderNative {
		t.Fatalf("expected encoder default preserved, got %q", cfg.Encoding.Encoder)
	}
	if len(cfg.Entries) != 2 {
		t.Fatalf("expected file entries to replace defaults, got %d", len(cfg.Entries))
	}
	if cfg.Entries[0].Source != "a.png" {
		t.Fatalf("expected trimmed source name, got %q", cfg.Entries[0].Source)
	}
	if got := cfg.EntryQuality(cfg.Entries[0]); got != 70 {
		t.Fatalf("expected job quality 70, got %d", got)
	}
	if got := cfg.EntryQuality(cfg.Entries[1]); got != 95 {
		t.Fatalf("expected entry quality 95, got %d", got)
	}
}

func TestLoadExpandsLogFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	configPath := filepath.Join(t.TempDir(), "imgbatch.toml")
	body := "[logging]\nfile = \"~/logs/imgbatch.log\"\nformat = \"JSON\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(tempHome, "logs", "imgbatch.log"); cfg.Logging.File != want {
		t.Fatalf("logging.file = %q, want %q", cfg.Logging.File, want)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowercased format, got %q", cfg.Logging.Format)
	}
	if len(cfg.Entries) != len(config.DefaultEntries()) {
		t.Fatal("a file without entries must keep the compiled-in table")
	}
}

func TestLoadAcceptsExplicitZeroQuality(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "imgbatch.toml")
	body := `[encoding]
quality = 0

[[entries]]
source = "a.png"
destination = "a.webp"
max_width = 100

[[entries]]
source = "b.png"
destination = "b.webp"
max_width = 100
quality = 0

[[entries]]
source = "c.png"
destination = "c.webp"
max_width = 100
quality = 60
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	for i, want := range []int{0, 0, 60} {
		if got := cfg.EntryQuality(cfg.Entries[i]); got != want {
			t.Fatalf("entries[%d] quality = %d, want %d", i, got, want)
		}
	}
}

func TestLoadEntryZeroQualityOverridesJobDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "imgbatch.toml")
	body := "[[entries]]\nsource = \"a.png\"\ndestination = \"a.webp\"\nmax_width = 100\nquality = 0\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.EntryQuality(cfg.Entries[0]); got != 0 {
		t.Fatalf("explicit entry quality 0 resolved to %d", got)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "imgbatch.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "imgbatch.toml")
	if err := os.WriteFile(configPath, []byte("[encoding]\nqualty = 80\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown encoder", func(c *config.Config) { c.Encoding.Encoder = "vips" }, "encoding.encoder"},
		{"quality too high", func(c *config.Config) { c.Encoding.Quality = config.Quality(101) }, "encoding.quality"},
		{"quality negative", func(c *config.Config) { c.Encoding.Quality = config.Quality(-1) }, "encoding.quality"},
		{"quality unset", func(c *config.Config) { c.Encoding.Quality = nil }, "encoding.quality"},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"no entries", func(c *config.Config) { c.Entries = nil }, "at least one"},
		{"zero width", func(c *config.Config) { c.Entries[0].MaxWidth = 0 }, "entries[0].max_width"},
		{"missing source", func(c *config.Config) { c.Entries[1].Source = "" }, "entries[1].source"},
		{"nested destination", func(c *config.Config) { c.Entries[2].Destination = "sub/x.webp" }, "entries[2].destination"},
		{"entry quality", func(c *config.Config) { c.Entries[0].Quality = config.Quality(120) }, "entries[0].quality"},
		{"duplicate destination", func(c *config.Config) { c.Entries[3].Destination = c.Entries[0].Destination }, "duplicates entries[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
