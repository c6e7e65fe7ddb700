package main

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imgbatch/internal/config"
	"imgbatch/internal/testsupport"
)

func TestRunBatchConvertsAndPrintsSummary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEntries(
		config.Entry{Source: "wide.png", Destination: "wide.webp", MaxWidth: 100},
		config.Entry{Source: "absent.png", Destination: "absent.webp", MaxWidth: 100},
	))
	testsupport.WritePNG(t, filepath.Join(cfg.Paths.SourceDir, "wide.png"), 400, 300)
	cfgPath := testsupport.WriteConfigFile(t, cfg)

	var out bytes.Buffer
	if err := runBatch(context.Background(), &out, cfgPath, ""); err != nil {
		t.Fatalf("runBatch: %v", err)
	}

	if got := testsupport.WebPSize(t, filepath.Join(cfg.Paths.DestDir, "wide.webp")); got != image.Pt(100, 75) {
		t.Fatalf("output = %v, want 100x75", got)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.DestDir, "absent.webp")); !os.IsNotExist(err) {
		t.Fatalf("expected no output for missing source, stat err = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"converted",
		"source not found",
		"SUCCEEDED",
		"SKIPPED",
		"400x300 → 100x75",
		"1 succeeded · 1 skipped · 0 failed",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunBatchReturnsConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imgbatch.toml")
	body := "[[entries]]\nsource = \"a.png\"\ndestination = \"a.webp\"\nmax_width = 0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := runBatch(context.Background(), &bytes.Buffer{}, path, "")
	if err == nil {
		t.Fatal("expected config error")
	}
	if !strings.Contains(err.Error(), "max_width") {
		t.Fatalf("error = %v, want max_width mention", err)
	}
}

func TestRunBatchEncoderMissingPrintsNoSummary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEncoder(config.EncoderCwebp))
	cfg.Encoding.CwebpBinary = "imgbatch-missing-cwebp"
	cfgPath := testsupport.WriteConfigFile(t, cfg)

	var out bytes.Buffer
	if err := runBatch(context.Background(), &out, cfgPath, ""); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "encoder unavailable") {
		t.Fatalf("expected encoder diagnostic:\n%s", text)
	}
	if strings.Contains(text, "succeeded ·") {
		t.Fatalf("summary should not print for an aborted run:\n%s", text)
	}
	if _, err := os.Stat(cfg.Paths.DestDir); !os.IsNotExist(err) {
		t.Fatalf("destination should not be created, stat err = %v", err)
	}
}

func TestRootCommandRejectsArguments(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRootCommandLogLevelOverride(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEntries(
		config.Entry{Source: "absent.png", Destination: "absent.webp", MaxWidth: 100},
	))
	cfgPath := testsupport.WriteConfigFile(t, cfg)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", cfgPath, "--log-level", "error"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	text := out.String()
	if strings.Contains(text, "batch started") {
		t.Fatalf("info lines should be filtered at error level:\n%s", text)
	}
	if !strings.Contains(text, "0 succeeded · 1 skipped · 0 failed") {
		t.Fatalf("summary missing:\n%s", text)
	}
}

func TestRunBatchAppendsToConfiguredLogFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEntries(
		config.Entry{Source: "absent.png", Destination: "absent.webp", MaxWidth: 100},
	))
	cfg.Logging.File = filepath.Join(testsupport.BaseDir(cfg), "logs", "imgbatch.log")
	cfgPath := testsupport.WriteConfigFile(t, cfg)

	for run := 0; run < 2; run++ {
		if err := runBatch(context.Background(), &bytes.Buffer{}, cfgPath, ""); err != nil {
			t.Fatalf("runBatch #%d: %v", run+1, err)
		}
	}

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if n := strings.Count(string(content), "batch finished"); n != 2 {
		t.Fatalf("expected both runs appended to the log file, found %d:\n%s", n, content)
	}
}
