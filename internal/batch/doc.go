// Package batch converts an ordered table of source images into downsampled
// WEBP files.
//
// Entries run one at a time in table order. Each entry is attempted exactly
// once and ends as a Result tagged succeeded, skipped, or failed; a failing
// entry never stops the ones after it. Run wraps Process with the encoder
// availability check, advisory preflight, and a cross-process lock.
package batch
