package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateEntries(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return errors.New("paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DestDir) == "" {
		return errors.New("paths.dest_dir must be set")
	}
	return nil
}

func (c *Config) validateEncoding() error {
	switch c.Encoding.Encoder {
	case EncoderNative, EncoderCwebp:
	default:
		return fmt.Errorf("encoding.encoder: unsupported value %q (want %q or %q)", c.Encoding.Encoder, EncoderNative, EncoderCwebp)
	}
	if c.Encoding.Quality == nil {
		return errors.New("encoding.quality must be set")
	}
	if q := *c.Encoding.Quality; q < 0 || q > 100 {
		return errors.New("encoding.quality must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want %q or %q)", c.Logging.Format, LogFormatConsole, LogFormatJSON)
	}
	return nil
}

func (c *Config) validateEntries() error {
	if len(c.Entries) == 0 {
		return errors.New("entries must include at least one conversion")
	}
	seen := make(map[string]int, len(c.Entries))
	for i, e := range c.Entries {
		if e.Source == "" {
			return fmt.Errorf("entries[%d].source must be set", i)
		}
		if e.Destination == "" {
			return fmt.Errorf("entries[%d].destination must be set", i)
		}
		if filepath.Base(e.Destination) != e.Destination {
			return fmt.Errorf("entries[%d].destination must be a file name, got %q", i, e.Destination)
		}
		if e.MaxWidth <= 0 {
			return fmt.Errorf("entries[%d].max_width must be positive", i)
		}
		if e.Quality != nil && (*e.Quality < 0 || *e.Quality > 100) {
			return fmt.Errorf("entries[%d].quality must be between 0 and 100", i)
		}
		key := strings.ToLower(e.Destination)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("entries[%d].destination %q duplicates entries[%d]", i, e.Destination, prev)
		}
		seen[key] = i
	}
	return nil
}
