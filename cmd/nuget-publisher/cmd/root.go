package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/nuget-publisher/internal/config"
	"github.com/oshokin/nuget-publisher/internal/service/publisher"
	"github.com/oshokin/nuget-publisher/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// projectName overrides the configured project name.
	projectName string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command running one publishing action.
	rootCmd = &cobra.Command{
		Use:   "nuget-publisher <updateVersion|packAndPush>",
		Short: "Bump the package version and publish the package to NuGet",
		Long: `Automates publishing a .NET library to a NuGet server.

  updateVersion (or 0)   increase <PackageVersion> in the .csproj by 0.0.1
  packAndPush   (or 1)   run "dotnet pack --no-build" into bin/nuget and push
                         the package with the API key from nugetApiKey.txt

Close IDEs that keep the .csproj open (such as Rider) before bumping the version.`,
		Args:         cobra.ExactArgs(1),
		ValidArgs:    []string{"updateVersion", "packAndPush", "packAndPublish", "0", "1"},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &publisher.Options{
				Action:      args[0],
				ConfigPath:  configPath,
				ProjectName: projectName,
				LogLevel:    logLevel,
				Output:      cmd.OutOrStdout(),
			}

			return publisher.Run(ctx, options)
		},
	}

	// initCmd writes a settings file with defaults.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a settings file filled with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := &publisher.Options{
				ConfigPath:  configPath,
				ProjectName: projectName,
			}

			return publisher.WriteDefaultSettings(cmd.Context(), options)
		},
	}
)

// Execute runs the nuget-publisher CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&projectName, "project", "p", "", "project name (csproj file name without extension)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(initCmd)
	version.AttachCobraVersionCommand(rootCmd)
}
