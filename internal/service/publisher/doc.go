// Package publisher bumps the package version of a .NET project and publishes
// the package to a NuGet server.
//
// Two mutually exclusive actions are supported: bumping the patch component of
// the manifest version, and packing then pushing the package. Each invocation
// is one-shot and keeps no state between runs.
package publisher
