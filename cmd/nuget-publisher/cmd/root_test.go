package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/nuget-publisher/internal/config"
	"github.com/oshokin/nuget-publisher/internal/version"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath, projectName, logLevel = config.DefaultConfigFilename, "", ""
	})

	err := rootCmd.Execute()

	return out.String(), err
}

// TestVersionSubcommand prints build metadata.
func TestVersionSubcommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, version.Full()+"\n", out)
}

// TestRootRequiresAction rejects a missing or unknown action.
func TestRootRequiresAction(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)

	_, err = execute(t, "deploy", "--project", "SlowLang.Engine",
		"--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

// TestBumpThroughCLI runs updateVersion against a project in the working directory.
func TestBumpThroughCLI(t *testing.T) {
	dir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	manifestPath := filepath.Join(dir, "SlowLang.Engine.csproj")
	require.NoError(t, os.WriteFile(manifestPath, []byte("<PackageVersion>0.0.9</PackageVersion>"), 0o600))

	out, err := execute(t, "updateVersion")
	require.NoError(t, err)
	require.Equal(t, "0.0.10\n", out)

	contents, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "<PackageVersion>0.0.10</PackageVersion>", string(contents))
}

// TestInitSubcommand writes the settings file once.
func TestInitSubcommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	_, err := execute(t, "init", "--config", path, "--project", "SlowLang.Engine")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "SlowLang.Engine", cfg.ProjectName)

	_, err = execute(t, "init", "--config", path, "--project", "SlowLang.Engine")
	require.Error(t, err)
}
