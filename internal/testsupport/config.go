package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"imgbatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose source, destination, and lock paths live
// in a per-test temp directory. The source directory exists; the destination
// directory does not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "source")
	cfgVal.Paths.DestDir = filepath.Join(base, "assets")
	cfgVal.Paths.LockFile = filepath.Join(base, "imgbatch.lock")
	if err := os.MkdirAll(cfgVal.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithEntries replaces the conversion table.
func WithEntries(entries ...config.Entry) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Entries = append([]config.Entry(nil), entries...)
	}
}

// WithEncoder selects the encoder backend.
func WithEncoder(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoding.Encoder = name
	}
}

// WithStubbedBinary writes an executable shell script named name into a temp
// bin directory and points the cwebp binary setting at it when name is cwebp.
// The bin directory is prepended to PATH for the rest of the test.
func WithStubbedBinary(name, script string) ConfigOption {
	return func(b *configBuilder) {
		path := StubBinary(b.t, filepath.Join(b.baseDir, "bin"), name, script)
		if name == "cwebp" {
			b.cfg.Encoding.CwebpBinary = path
		}
	}
}

// StubBinary writes script as an executable named name inside binDir, prepends
// binDir to PATH, and returns the script path.
func StubBinary(t testing.TB, binDir, name, script string) string {
	t.Helper()

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return target
}

// WriteConfigFile serializes cfg as TOML next to its temp directories and
// returns the file path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "imgbatch.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SourceDir)
}
