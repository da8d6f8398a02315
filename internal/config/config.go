package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the publisher actions.
type Config struct {
	// ProjectName is the csproj file name without extension, also the package ID.
	ProjectName string `yaml:"project_name"`
	// ManifestPath is the project manifest holding the version field.
	ManifestPath string `yaml:"manifest"`
	// CredentialFile is the text file holding the NuGet API key.
	CredentialFile string `yaml:"api_key_file"`
	// OutputDir is where dotnet pack places the .nupkg, relative to the working directory.
	OutputDir string `yaml:"output_dir"`
	// Source is the NuGet server endpoint to push to.
	Source string `yaml:"source"`
	// DotnetPath is the dotnet executable name or path.
	DotnetPath string `yaml:"dotnet"`
	// VersionTag is the XML element whose body holds the package version.
	VersionTag string `yaml:"version_tag"`
	// LockingProcesses lists executables known to hold the manifest open.
	LockingProcesses []string `yaml:"locking_processes"`
	// LogLevel is the minimum level of emitted log lines.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for publisher settings.
	DefaultConfigFilename = "nuget-publisher-settings.yaml"

	// DefaultCredentialFilename is the default API key file.
	DefaultCredentialFilename = "nugetApiKey.txt"

	// DefaultOutputDir is the default dotnet pack output directory.
	DefaultOutputDir = "bin/nuget"

	// DefaultSource is nuget.org's v3 service index.
	DefaultSource = "https://api.nuget.org/v3/index.json"

	// DefaultDotnetPath is resolved through PATH.
	DefaultDotnetPath = "dotnet"

	// DefaultVersionTag is the MSBuild property carrying the package version.
	DefaultVersionTag = "PackageVersion"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// ManifestExtension is the extension of .NET project manifests.
	ManifestExtension = ".csproj"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errProjectNameRequired is returned when no project name is configured or inferable.
	errProjectNameRequired = errors.New("project name must be provided")
	// errInvalidVersionTag is returned when the version tag is not an XML element name.
	errInvalidVersionTag = errors.New("invalid version tag")
	// errNoProject is returned when the working directory holds no manifest.
	errNoProject = errors.New("no " + ManifestExtension + " file found")
	// errAmbiguousProject is returned when the working directory holds several manifests.
	errAmbiguousProject = errors.New("several " + ManifestExtension + " files found")

	xmlNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
)

// DefaultLockingProcesses returns executable names of IDEs known to lock project files.
func DefaultLockingProcesses() []string {
	return []string{"rider64", "rider64.exe", "rider", "devenv.exe"}
}

// Load reads settings from the provided path.
// A missing file is not an error: the zero Config is returned so defaults apply.
// Validation is left to the caller because the project name may still be overridden.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return new(Config), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for empty fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	settings.ProjectName = strings.TrimSpace(settings.ProjectName)
	if settings.ProjectName == "" {
		return errProjectNameRequired
	}

	if settings.ManifestPath == "" {
		settings.ManifestPath = settings.ProjectName + ManifestExtension
	}

	if settings.CredentialFile == "" {
		settings.CredentialFile = DefaultCredentialFilename
	}

	if settings.OutputDir == "" {
		settings.OutputDir = DefaultOutputDir
	}

	if settings.DotnetPath == "" {
		settings.DotnetPath = DefaultDotnetPath
	}

	if settings.LockingProcesses == nil {
		settings.LockingProcesses = DefaultLockingProcesses()
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if settings.VersionTag == "" {
		settings.VersionTag = DefaultVersionTag
	}

	if !xmlNamePattern.MatchString(settings.VersionTag) {
		return fmt.Errorf("%w: %q", errInvalidVersionTag, settings.VersionTag)
	}

	if settings.Source == "" {
		settings.Source = DefaultSource
	}

	source, err := url.ParseRequestURI(settings.Source)
	if err != nil {
		return fmt.Errorf("invalid source URI: %w", err)
	}

	if !source.IsAbs() || source.Host == "" {
		return fmt.Errorf("invalid source URI: %q is not absolute", settings.Source)
	}

	return nil
}

// InferProjectName returns the name of the only manifest in dir, without extension.
func InferProjectName(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ManifestExtension))
	if err != nil {
		return "", fmt.Errorf("search manifests: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w in %s", errNoProject, dir)
	case 1:
		return strings.TrimSuffix(filepath.Base(matches[0]), ManifestExtension), nil
	default:
		return "", fmt.Errorf("%w in %s, set project_name", errAmbiguousProject, dir)
	}
}
