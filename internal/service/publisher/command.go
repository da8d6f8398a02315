package publisher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/nuget-publisher/internal/config"
	"github.com/oshokin/nuget-publisher/internal/credential"
	"github.com/oshokin/nuget-publisher/internal/dotnet"
	"github.com/oshokin/nuget-publisher/internal/logger"
	"github.com/oshokin/nuget-publisher/internal/manifest"
	"github.com/oshokin/nuget-publisher/internal/service/common"
)

// Options contains inputs for the publisher entry point.
type Options struct {
	// Action is the raw action argument, see ParseAction.
	Action string
	// ConfigPath is an optional path to the settings file.
	ConfigPath string
	// ProjectName overrides the configured or inferred project name.
	ProjectName string
	// LogLevel overrides the configured log level.
	LogLevel string
	// WorkDir is the project directory; defaults to the current directory.
	WorkDir string
	// Output receives the captured dotnet output; defaults to os.Stdout.
	Output io.Writer
	// Runner executes dotnet; defaults to dotnet.ExecRunner.
	Runner dotnet.Runner
}

// publisher holds everything a single run needs.
// It is unexported: callers should use Run, which encapsulates setup and validation.
type publisher struct {
	// cfg is the validated settings.
	cfg *config.Config
	// workDir is the absolute project directory.
	workDir string
	// manifest is the project manifest holding the version field.
	manifest *manifest.File
	// client runs the dotnet CLI.
	client *dotnet.Client
	// output receives text meant for the operator.
	output io.Writer
}

var (
	errUnknownLogLevel = errors.New("unknown log level")
	errSettingsExist   = errors.New("settings file already exists")
)

// Run executes the selected action.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "publisher")

	action, err := ParseAction(opts.Action)
	if err != nil {
		return err
	}

	pub, err := newPublisher(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize publisher: %w", err)
	}

	ctx = logger.WithKV(ctx, "project", pub.cfg.ProjectName)

	switch action {
	case ActionBump:
		return pub.BumpVersion(ctx)
	case ActionPackAndPush:
		return pub.PackAndPush(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}

// WriteDefaultSettings saves a settings file filled with defaults for the project.
// An existing file is never overwritten.
func WriteDefaultSettings(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "publisher")

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", errSettingsExist, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	workDir, err := resolveWorkDir(opts.WorkDir)
	if err != nil {
		return err
	}

	cfg := new(config.Config)
	if err = resolveProjectName(cfg, opts, workDir); err != nil {
		return err
	}

	if err = config.Save(path, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	logger.InfoKV(ctx, "Settings written", "path", path, "project", cfg.ProjectName)

	return nil
}

// newPublisher loads settings, applies overrides and wires collaborators.
func newPublisher(ctx context.Context, opts *Options) (*publisher, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkDir)
	if err != nil {
		return nil, err
	}

	if err = resolveProjectName(cfg, opts, workDir); err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	logger.SetLevel(level)

	runner := opts.Runner
	if runner == nil {
		runner = dotnet.ExecRunner{}
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	pub := &publisher{
		cfg:      cfg,
		workDir:  workDir,
		manifest: manifest.NewFile(inWorkDir(workDir, cfg.ManifestPath), cfg.VersionTag),
		client: dotnet.NewClient(runner, dotnet.ClientOptions{
			Executable: cfg.DotnetPath,
			WorkDir:    workDir,
			OutputDir:  cfg.OutputDir,
			Source:     cfg.Source,
		}),
		output: output,
	}

	logger.DebugKV(ctx, "Publisher initialized",
		"work_dir", workDir, "manifest", pub.manifest.Path(), "source", cfg.Source)

	return pub, nil
}

// BumpVersion increments the patch component of the manifest version in place.
func (p *publisher) BumpVersion(ctx context.Context) error {
	p.warnAboutLockingProcesses(ctx)

	previous, next, err := p.manifest.Bump(ctx)
	if err != nil {
		return fmt.Errorf("bump version: %w", err)
	}

	logger.InfoKV(ctx, "Package version bumped",
		"manifest", p.manifest.Path(), "old", previous.String(), "new", next.String())

	_, _ = fmt.Fprintln(p.output, next.String())

	return nil
}

// PackAndPush packs the project and pushes the resulting package.
// The API key is loaded first so that a missing key stops the run before any command.
func (p *publisher) PackAndPush(ctx context.Context) error {
	key, err := credential.Load(inWorkDir(p.workDir, p.cfg.CredentialFile))
	if err != nil {
		return err
	}

	if err = p.pack(ctx); err != nil {
		return err
	}

	return p.push(ctx, key)
}

// pack runs dotnet pack and shows its output.
func (p *publisher) pack(ctx context.Context) error {
	logger.InfoKV(ctx, "Packing project", "output_dir", p.client.OutputDir())

	result, err := p.client.Pack(ctx)
	p.surface(result.Output)

	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	return nil
}

// push reads the current version and pushes the matching package.
func (p *publisher) push(ctx context.Context, key credential.APIKey) error {
	field, err := p.manifest.Read(ctx)
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	version := field.Version.String()
	packageFile := p.client.PackageFile(p.cfg.ProjectName, version)

	logger.InfoKV(ctx, "Pushing package", "package", packageFile, "source", p.cfg.Source)

	result, outcome, err := p.client.Push(ctx, packageFile, key)
	if err != nil {
		p.surface(result.Output)
		return fmt.Errorf("push: %w", err)
	}

	switch outcome {
	case dotnet.OutcomeAlreadyPublished:
		logger.WarnKV(ctx, "Package with this version was pushed already", "version", version)
	case dotnet.OutcomeSuccess:
		logger.InfoKV(ctx, "Package pushed", "version", version)
	default:
		logger.ErrorKV(ctx, "Push failed with unknown error", "version", version, "exit_code", result.ExitCode)
		p.surface(result.Output)
	}

	return nil
}

// warnAboutLockingProcesses logs running IDEs that keep the manifest open.
func (p *publisher) warnAboutLockingProcesses(ctx context.Context) {
	running, err := common.FindRunningProcesses(p.cfg.LockingProcesses)
	if err != nil {
		logger.DebugKV(ctx, "Unable to list running processes", "error", err)
		return
	}

	for _, name := range running {
		logger.WarnKV(ctx, "Process may hold the manifest open, close the project there if the write fails",
			"process", name)
	}
}

// surface writes captured tool output for the operator.
func (p *publisher) surface(output string) {
	if output == "" {
		return
	}

	_, _ = io.WriteString(p.output, output)
}

// resolveWorkDir returns an absolute project directory.
func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}

		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}

	return abs, nil
}

// resolveProjectName applies the override and falls back to the lone manifest in workDir.
func resolveProjectName(cfg *config.Config, opts *Options, workDir string) error {
	if opts.ProjectName != "" {
		cfg.ProjectName = opts.ProjectName
	}

	if cfg.ProjectName != "" {
		return nil
	}

	name, err := config.InferProjectName(workDir)
	if err != nil {
		return fmt.Errorf("project name: %w", err)
	}

	cfg.ProjectName = name

	return nil
}

// inWorkDir resolves a relative path against the project directory.
func inWorkDir(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}
