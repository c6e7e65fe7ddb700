package batch

import (
	"errors"
	"fmt"
	"image"
	"time"

	"imgbatch/internal/config"
)

// Per-entry failure kinds. Result.Err wraps exactly one of these.
var (
	ErrSourceNotFound = errors.New("source not found")
	ErrDecode         = errors.New("decode failed")
	ErrEncode         = errors.New("encode failed")
	ErrWrite          = errors.New("write failed")
)

// Entry is one row of the conversion table with its quality resolved.
type Entry struct {
	Source      string
	Destination string
	MaxWidth    int
	Quality     int
}

// Status tags the outcome of one entry.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result records what happened to one entry.
type Result struct {
	Entry           Entry
	Status          Status
	SourcePath      string
	DestinationPath string
	Reason          string
	Err             error
	InputSize       image.Point
	OutputSize      image.Point
	Resized         bool
	Bytes           int64
	Duration        time.Duration
}

func skipped(e Entry, src string, reason string, err error) Result {
	return Result{Entry: e, Status: StatusSkipped, SourcePath: src, Reason: reason, Err: err}
}

func failed(e Entry, src, dst string, kind, err error) Result {
	return Result{
		Entry:           e,
		Status:          StatusFailed,
		SourcePath:      src,
		DestinationPath: dst,
		Reason:          kind.Error(),
		Err:             fmt.Errorf("%w: %w", kind, err),
	}
}

// Summary counts results by status.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Bytes     int64
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusSucceeded:
			s.Succeeded++
			s.Bytes += r.Bytes
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Job is a fully resolved batch: the table plus the directories it reads
// from and writes to.
type Job struct {
	Entries   []Entry
	SourceDir string
	DestDir   string
	LockFile  string
}

// JobFromConfig resolves the configured table, filling in the job-wide
// quality for entries that do not set their own.
func JobFromConfig(cfg *config.Config) Job {
	entries := make([]Entry, 0, len(cfg.Entries))
	for _, e := range cfg.Entries {
		entries = append(entries, Entry{
			Source:      e.Source,
			Destination: e.Destination,
			MaxWidth:    e.MaxWidth,
			Quality:     cfg.EntryQuality(e),
		})
	}
	return Job{
		Entries:   entries,
		SourceDir: cfg.Paths.SourceDir,
		DestDir:   cfg.Paths.DestDir,
		LockFile:  cfg.Paths.LockFile,
	}
}
