package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikonufrienko/editor-packager/internal/config"
	"github.com/nikonufrienko/editor-packager/internal/logger"
	"github.com/nikonufrienko/editor-packager/internal/service/builder"
	"github.com/nikonufrienko/editor-packager/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel sets the minimum log level for the run.
	logLevel string

	// Flag overrides applied on top of the configuration file.
	appName    string
	binaryPath string
	iconPath   string
	outputName string
	toolPath   string
	toolURL    string
	iconName   string
	workDir    string

	// rootCmd represents the base command for packaging the editor.
	rootCmd = &cobra.Command{
		Use:   "editor-packager",
		Short: "Package the editor release binary into a portable AppImage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			return builder.Run(ctx, &builder.Options{Config: cfg})
		},
	}
)

// Execute runs the editor-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the settings: built-in defaults, then the YAML file
// when present, then explicitly provided flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if _, err := os.Stat(configPath); err == nil {
		loaded, loadErr := config.Load(configPath)
		if loadErr != nil {
			return nil, loadErr
		}

		cfg = loaded
	} else if cmd.Flags().Changed("config") {
		// An explicitly requested settings file must exist.
		return nil, fmt.Errorf("read settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("app") {
		cfg.AppName = appName
	}

	if flags.Changed("binary") {
		cfg.BinaryPath = binaryPath
	}

	if flags.Changed("icon") {
		cfg.IconPath = iconPath
	}

	if flags.Changed("output") {
		cfg.OutputName = outputName
	}

	if flags.Changed("tool-path") {
		cfg.ToolPath = toolPath
	}

	if flags.Changed("tool-url") {
		cfg.ToolURL = toolURL
	}

	if flags.Changed("icon-name") {
		cfg.IconName = iconName
	}

	if flags.Changed("workdir") {
		cfg.WorkDir = workDir
	}

	return cfg, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, fatal)")
	flags.StringVar(&appName, "app", config.DefaultAppName, "application name")
	flags.StringVar(&binaryPath, "binary", config.DefaultBinaryPath, "path to the prebuilt release binary")
	flags.StringVar(&iconPath, "icon", config.DefaultIconPath, "path to the icon asset")
	flags.StringVar(&outputName, "output", "", "artifact filename (defaults to <app>-x86_64.AppImage)")
	flags.StringVar(&toolPath, "tool-path", config.DefaultToolPath, "local path of the cached packaging tool")
	flags.StringVar(&toolURL, "tool-url", config.DefaultToolURL, "download URL of the packaging tool")
	flags.StringVar(&iconName, "icon-name", "", "desktop entry icon name (defaults to the application name)")
	flags.StringVar(&workDir, "workdir", ".", "directory the layout and artifact are created in")
}
