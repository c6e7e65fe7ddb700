package batch

import (
	"context"
	"log/slog"
	"time"

	"imgbatch/internal/logging"
	"imgbatch/internal/preflight"
)

// Report is the outcome of one Run. Aborted is set, and Results is empty,
// when the run did no work at all.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Aborted    string
	Preflight  []preflight.Result
	Results    []Result
}

// Summary tallies the report's results.
func (r Report) Summary() Summary {
	return Summarize(r.Results)
}

// Run executes job. A missing encoder or a lock held by another run ends the
// run early with a logged diagnostic and no filesystem changes; neither is
// returned as an error. The only errors returned are failures to manage the
// lock file itself.
func (c *Converter) Run(ctx context.Context, job Job) (Report, error) {
	logger := logging.WithContext(ctx, c.logger)
	report := Report{StartedAt: time.Now()}
	report.RunID, _ = logging.RunIDFromContext(ctx)

	encoderCheck := preflight.CheckEncoder(c.encoder)
	if !encoderCheck.Passed {
		report.Aborted = "WEBP encoder unavailable: " + encoderCheck.Detail
		logger.Error("encoder unavailable; nothing converted",
			slog.String("check", encoderCheck.Name),
			slog.String("reason", encoderCheck.Detail),
		)
		report.FinishedAt = time.Now()
		return report, nil
	}

	report.Preflight = preflight.Directories(job.SourceDir, job.DestDir)
	for _, check := range report.Preflight {
		if !check.Passed {
			logger.Warn("preflight check failed",
				slog.String("check", check.Name),
				slog.String("reason", check.Detail),
			)
		}
	}

	release, ok, err := acquireLock(job.LockFile)
	if err != nil {
		report.FinishedAt = time.Now()
		return report, err
	}
	if !ok {
		report.Aborted = "another run holds " + job.LockFile
		logger.Warn("another run is in progress; nothing converted",
			slog.String("lock_file", job.LockFile),
		)
		report.FinishedAt = time.Now()
		return report, nil
	}
	defer release()

	logger.Info("batch started",
		slog.Int("entries", len(job.Entries)),
		slog.String("encoder", c.encoder.Name()),
		slog.String("source_dir", job.SourceDir),
		slog.String("dest_dir", job.DestDir),
	)
	report.Results = c.Process(ctx, job.Entries, job.SourceDir, job.DestDir)

	summary := report.Summary()
	logger.Info("batch finished",
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Int64("output_bytes", summary.Bytes),
	)
	report.FinishedAt = time.Now()
	return report, nil
}
