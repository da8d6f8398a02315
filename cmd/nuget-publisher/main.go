// Command nuget-publisher bumps the package version of a .NET project and
// publishes the package to a NuGet server.
package main

import "github.com/oshokin/nuget-publisher/cmd/nuget-publisher/cmd"

func main() {
	cmd.Execute()
}
