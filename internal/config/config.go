package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes a single packaging run: what to package, where the
// inputs live, and what the resulting AppImage should be called.
// It is treated as immutable once the pipeline starts.
type Config struct {
	// AppName is the application name used for the AppDir, the desktop
	// entry and the packaged binary.
	AppName string `yaml:"app_name"`
	// BinaryPath is the path to the prebuilt release executable.
	BinaryPath string `yaml:"binary_path"`
	// IconPath is the path to the icon asset. The asset is optional;
	// a placeholder icon is synthesized when it is absent.
	IconPath string `yaml:"icon_path"`
	// OutputName is the final artifact filename.
	// Defaults to "<app_name>-x86_64.AppImage".
	OutputName string `yaml:"output_name"`
	// ToolPath is the local path of the cached appimagetool binary.
	ToolPath string `yaml:"tool_path"`
	// ToolURL is where appimagetool is downloaded from on first use.
	ToolURL string `yaml:"tool_url"`
	// IconName is the value of the desktop entry Icon key and the name of
	// the icon file inside the AppDir. Defaults to AppName.
	IconName string `yaml:"icon_name"`
	// WorkDir is the directory the AppDir and the artifact are created in.
	WorkDir string `yaml:"work_dir"`
	// ManifestPath is where the build manifest of the last successful run
	// is recorded.
	ManifestPath string `yaml:"manifest_path"`
}

const (
	// DefaultConfigFilename is the default filename for packaging settings.
	DefaultConfigFilename = "editor-packager.yaml"

	// DefaultAppName is the application packaged when nothing else is configured.
	DefaultAppName = "editor"

	// DefaultBinaryPath is where the release build of the editor is expected.
	DefaultBinaryPath = "target/release/editor"

	// DefaultIconPath is where the icon asset is expected.
	DefaultIconPath = "assets/icon.png"

	// DefaultToolPath is the cached location of appimagetool, reused across runs.
	DefaultToolPath = "appimagetool-x86_64.AppImage"

	// DefaultToolURL is the fixed download location of appimagetool.
	DefaultToolURL = "https://github.com/AppImage/AppImageKit/releases/download/continuous/appimagetool-x86_64.AppImage"

	// DefaultManifestFilename is the default filename for the build manifest.
	DefaultManifestFilename = "editor-packager-manifest.yaml"

	// ArtifactSuffix is appended to the application name to form the
	// default artifact filename.
	ArtifactSuffix = "-x86_64.AppImage"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errAppNameRequired is returned when the application name is missing.
	errAppNameRequired = errors.New("application name must be provided")
	// errAppNameInvalid is returned when the application name cannot be used
	// as a filename or a desktop entry Exec value.
	errAppNameInvalid = errors.New("application name must not contain spaces or path separators")
	// errBinaryPathRequired is returned when the source binary path is missing.
	errBinaryPathRequired = errors.New("source binary path must be provided")
)

// Default returns a configuration populated with the stock editor paths.
func Default() *Config {
	return &Config{
		AppName:    DefaultAppName,
		BinaryPath: DefaultBinaryPath,
		IconPath:   DefaultIconPath,
		ToolPath:   DefaultToolPath,
		ToolURL:    DefaultToolURL,
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
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

// Validate checks required fields and fills defaults for optional ones.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	cfg.AppName = strings.TrimSpace(cfg.AppName)
	if cfg.AppName == "" {
		return errAppNameRequired
	}

	if strings.ContainsAny(cfg.AppName, " \t/"+string(filepath.Separator)) {
		return fmt.Errorf("%q: %w", cfg.AppName, errAppNameInvalid)
	}

	if cfg.BinaryPath == "" {
		return errBinaryPathRequired
	}

	if cfg.OutputName == "" {
		cfg.OutputName = cfg.AppName + ArtifactSuffix
	}

	if cfg.ToolPath == "" {
		cfg.ToolPath = DefaultToolPath
	}

	if cfg.ToolURL == "" {
		cfg.ToolURL = DefaultToolURL
	}

	if _, err := url.ParseRequestURI(cfg.ToolURL); err != nil {
		return fmt.Errorf("invalid tool URL: %w", err)
	}

	if cfg.IconName == "" {
		cfg.IconName = cfg.AppName
	}

	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	if cfg.ManifestPath == "" {
		cfg.ManifestPath = DefaultManifestFilename
	}

	return nil
}

// ArtifactPath returns the final artifact location inside the work directory.
func (c *Config) ArtifactPath() string {
	return filepath.Join(c.WorkDir, c.OutputName)
}
