package preflight

import (
	"imgbatch/internal/codec"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Directories checks the batch's source and destination directories.
func Directories(sourceDir, destDir string) []Result {
	return []Result{
		CheckSourceDir("Source directory", sourceDir),
		CheckDestinationDir("Destination directory", destDir),
	}
}

// CheckEncoder reports whether the selected WEBP encoder can run.
func CheckEncoder(enc codec.Encoder) Result {
	name := "WEBP encoder"
	if enc == nil {
		return Result{Name: name, Detail: "no encoder configured"}
	}
	name += " (" + enc.Name() + ")"
	status := enc.Check()
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	detail := status.Description
	if status.Path != "" {
		detail = status.Path
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
