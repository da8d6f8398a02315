// Package integration holds end-to-end tests that drive the publisher with the
// real process runner against a fake dotnet executable.
package integration
