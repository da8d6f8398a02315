package dotnet

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oshokin/nuget-publisher/internal/credential"
	"github.com/oshokin/nuget-publisher/internal/logger"
)

// PackageExtension is the file extension of NuGet packages.
const PackageExtension = ".nupkg"

// redacted replaces the API key in logged command lines.
const redacted = "***"

// ClientOptions configures a Client.
type ClientOptions struct {
	// Executable is the dotnet binary name or path.
	Executable string
	// WorkDir is the project directory the commands run in.
	WorkDir string
	// OutputDir is the pack output directory, absolute or relative to WorkDir.
	OutputDir string
	// Source is the NuGet server endpoint.
	Source string
}

// Client builds and runs dotnet pack and dotnet nuget push commands.
type Client struct {
	runner     Runner
	executable string
	workDir    string
	outputDir  string
	source     string
}

// NewClient creates a Client. The output directory is resolved against the
// working directory and always rendered with forward slashes and a trailing slash.
func NewClient(runner Runner, opts ClientOptions) *Client {
	outputDir := opts.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(opts.WorkDir, outputDir)
	}

	outputDir = strings.TrimSuffix(filepath.ToSlash(filepath.Clean(outputDir)), "/") + "/"

	return &Client{
		runner:     runner,
		executable: opts.Executable,
		workDir:    opts.WorkDir,
		outputDir:  outputDir,
		source:     opts.Source,
	}
}

// OutputDir returns the resolved pack output directory.
func (c *Client) OutputDir() string {
	return c.outputDir
}

// PackageFile returns the path dotnet pack produces for project at version.
func (c *Client) PackageFile(project, version string) string {
	return c.outputDir + project + "." + version + PackageExtension
}

// PackArgs returns the arguments of the pack command. Compiled artifacts
// must already exist: the project is not rebuilt.
func (c *Client) PackArgs() []string {
	return []string{"pack", "--no-build", "--output", c.outputDir}
}

// PushArgs returns the arguments of the push command for packageFile.
func (c *Client) PushArgs(packageFile string, key credential.APIKey) []string {
	return []string{
		"nuget", "push", packageFile,
		"--api-key", key.Reveal(),
		"--source", c.source,
	}
}

// Pack runs dotnet pack. A failing pack is only visible in the returned output.
func (c *Client) Pack(ctx context.Context) (Result, error) {
	return c.run(ctx, c.PackArgs(), "")
}

// Push runs dotnet nuget push for packageFile and classifies the result.
func (c *Client) Push(ctx context.Context, packageFile string, key credential.APIKey) (Result, Outcome, error) {
	result, err := c.run(ctx, c.PushArgs(packageFile, key), key.Reveal())
	if err != nil {
		return result, OutcomeUnknownFailure, err
	}

	return result, Classify(result.Output), nil
}

// run logs the command line with secret masked and executes it.
func (c *Client) run(ctx context.Context, args []string, secret string) (Result, error) {
	logger.InfoKV(ctx, "Running command", "command", CommandLine(c.executable, args, secret))

	result, err := c.runner.Run(ctx, c.workDir, c.executable, args...)
	if err != nil {
		return result, fmt.Errorf("%s %s: %w", c.executable, args[0], err)
	}

	if result.ExitCode != 0 {
		logger.WarnKV(ctx, "Command exited with non-zero status", "exit_code", result.ExitCode)
	}

	return result, nil
}

// CommandLine joins a command for display, masking every occurrence of secret.
func CommandLine(executable string, args []string, secret string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, executable)

	for _, arg := range args {
		if secret != "" {
			arg = strings.ReplaceAll(arg, secret, redacted)
		}

		parts = append(parts, arg)
	}

	return strings.Join(parts, " ")
}
