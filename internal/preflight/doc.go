// Package preflight provides readiness checks run before a batch starts.
//
// Directory checks are advisory: a failing source check is logged, and each
// entry still reports its own missing source. The encoder check gates the
// run.
package preflight
