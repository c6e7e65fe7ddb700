package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoding()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeEntries()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.DestDir, err = expandPath(c.Paths.DestDir); err != nil {
		return fmt.Errorf("paths.dest_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile()
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.Encoder = strings.ToLower(strings.TrimSpace(c.Encoding.Encoder))
	if c.Encoding.Encoder == "" {
		c.Encoding.Encoder = defaultEncoder
	}
	c.Encoding.CwebpBinary = strings.TrimSpace(c.Encoding.CwebpBinary)
	if c.Encoding.CwebpBinary == "" {
		c.Encoding.CwebpBinary = defaultCwebpBinary
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeEntries() {
	for i := range c.Entries {
		c.Entries[i].Source = strings.TrimSpace(c.Entries[i].Source)
		c.Entries[i].Destination = strings.TrimSpace(c.Entries[i].Destination)
	}
}
