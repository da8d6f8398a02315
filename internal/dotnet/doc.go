// Package dotnet drives the dotnet CLI to pack and push NuGet packages.
//
// The CLI is a black box: its combined output is captured and handed back to
// the caller, and push results are classified by sniffing that output.
package dotnet
