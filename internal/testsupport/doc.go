// Package testsupport holds fixtures shared by package tests: temp-dir backed
// configurations, generated PNG sources (opaque and translucent), WEBP
// readers for dimensions and pixels, and stub executables on PATH.
package testsupport
