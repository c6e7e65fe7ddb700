// Package config loads, normalizes, and validates imgbatch configuration.
//
// The conversion table, directories, and quality factors are compiled in so
// a bare invocation does the whole job. An optional TOML file can override
// any section; when it lists [[entries]] they replace the built-in table
// rather than extending it.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, a canonical encoder name, and clear validation errors.
package config
