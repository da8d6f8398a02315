// Package version exposes build metadata of nuget-publisher itself.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. They describe the tool, not the package it publishes.
package version
