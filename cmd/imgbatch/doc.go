// Package main hosts the imgbatch entrypoint.
//
// A bare invocation converts the whole compiled-in asset table. The command
// resolves configuration, builds the logger and encoder, runs the batch, and
// prints a summary table. It always exits 0: every problem, from a bad config
// file to a failed entry, is reported as output rather than an exit status.
package main
