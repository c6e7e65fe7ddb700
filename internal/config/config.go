package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains directory and lock file configuration.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	DestDir   string `toml:"dest_dir"`
	LockFile  string `toml:"lock_file"`
}

// Encoding contains WEBP encoder selection and the job-wide quality factor.
// Quality is a pointer so an explicit 0 is distinguishable from unset.
type Encoding struct {
	Encoder     string `toml:"encoder"`
	Quality     *int   `toml:"quality,omitempty"`
	CwebpBinary string `toml:"cwebp_binary"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Entry maps one source image to its destination name and width ceiling.
// A nil Quality means the job-wide encoding.quality applies.
type Entry struct {
	Source      string `toml:"source"`
	Destination string `toml:"destination"`
	MaxWidth    int    `toml:"max_width"`
	Quality     *int   `toml:"quality,omitempty"`
}

// Config encapsulates all configuration values for imgbatch.
//
// Configuration sections:
//   - Paths: source/destination directories and the run lock
//   - Encoding: encoder backend and default quality
//   - Logging: log format and level
//   - Entries: the ordered conversion table
type Config struct {
	Paths    Paths    `toml:"paths"`
	Encoding Encoding `toml:"encoding"`
	Logging  Logging  `toml:"logging"`
	Entries  []Entry  `toml:"entries"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/imgbatch/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: the compiled-in defaults are returned instead. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// A file that lists entries replaces the whole compiled-in table.
		var override Config
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&override); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		cfg.merge(override)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func (c *Config) merge(o Config) {
	if strings.TrimSpace(o.Paths.SourceDir) != "" {
		c.Paths.SourceDir = o.Paths.SourceDir
	}
	if strings.TrimSpace(o.Paths.DestDir) != "" {
		c.Paths.DestDir = o.Paths.DestDir
	}
	if strings.TrimSpace(o.Paths.LockFile) != "" {
		c.Paths.LockFile = o.Paths.LockFile
	}
	if strings.TrimSpace(o.Encoding.Encoder) != "" {
		c.Encoding.Encoder = o.Encoding.Encoder
	}
	if o.Encoding.Quality != nil {
		c.Encoding.Quality = o.Encoding.Quality
	}
	if strings.TrimSpace(o.Encoding.CwebpBinary) != "" {
		c.Encoding.CwebpBinary = o.Encoding.CwebpBinary
	}
	if strings.TrimSpace(o.Logging.Format) != "" {
		c.Logging.Format = o.Logging.Format
	}
	if strings.TrimSpace(o.Logging.Level) != "" {
		c.Logging.Level = o.Logging.Level
	}
	if strings.TrimSpace(o.Logging.File) != "" {
		c.Logging.File = o.Logging.File
	}
	if len(o.Entries) > 0 {
		c.Entries = append([]Entry(nil), o.Entries...)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("imgbatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EntryQuality returns the quality factor that applies to the entry.
func (c *Config) EntryQuality(e Entry) int {
	switch {
	case e.Quality != nil:
		return *e.Quality
	case c.Encoding.Quality != nil:
		return *c.Encoding.Quality
	}
	return defaultQuality
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

func defaultLockFile() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "imgbatch", "imgbatch.lock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "imgbatch.lock")
	}
	return filepath.Join(home, ".cache", "imgbatch", "imgbatch.lock")
}
