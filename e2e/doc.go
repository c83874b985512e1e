//go:build e2e

// Package e2e provides end-to-end tests that drive a real browser against
// the live mobile site.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome (or Edge) installation and network access to the
// site, and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// Each test launches its own browser process and writes its screenshots and
// reports under a temporary directory, so tests do not interfere with each
// other or with local artifacts.
package e2e
