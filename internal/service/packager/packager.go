package packager

import (
	"context"
	"fmt"
	"os"

	"github.com/nikonufrienko/editor-packager/internal/logger"
	"github.com/nikonufrienko/editor-packager/internal/service/appdir"
	"github.com/nikonufrienko/editor-packager/internal/service/common"
)

const (
	// extractAndRunEnv is read by the AppImage runtime. Setting it makes
	// the produced package fall back to extract-and-run execution instead
	// of requiring FUSE, which widens where the artifact can later run.
	extractAndRunEnv = "APPIMAGE_EXTRACT_AND_RUN"

	// archEnv tells appimagetool the target architecture explicitly.
	archEnv = "ARCH=x86_64"

	// compressionCodec favors maximum compression ratio over build speed.
	compressionCodec = "xz"
)

// Packager turns a complete AppDir layout into the final single-file
// artifact by invoking the provisioned packaging tool.
type Packager struct {
	toolPath string
	runner   common.CommandRunner
}

// Option configures packager behaviour.
type Option func(*Packager)

// WithRunner overrides the command runner, primarily for tests.
func WithRunner(runner common.CommandRunner) Option {
	return func(p *Packager) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// New creates a packager that invokes the tool at toolPath.
func New(toolPath string, opts ...Option) *Packager {
	p := &Packager{
		toolPath: toolPath,
		runner:   &common.ExecRunner{ExtraEnv: []string{archEnv}},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Package generates the artifact from the layout and returns the encoded
// SHA-512 checksum of the result. On success the intermediate layout is
// removed, leaving only the artifact; on failure the layout stays on disk
// for inspection and the error propagates.
func (p *Packager) Package(ctx context.Context, layout *appdir.Layout, artifactPath string) (string, error) {
	// Process-wide so the tool and anything it spawns see it.
	if err := os.Setenv(extractAndRunEnv, "1"); err != nil {
		return "", fmt.Errorf("set %s: %w", extractAndRunEnv, err)
	}

	logger.InfoKV(ctx, "Generating package",
		"layout", layout.Root, "artifact", artifactPath, "compression", compressionCodec)

	err := p.runner.Run(ctx, p.toolPath,
		"--comp", compressionCodec, "--no-appstream", layout.Root, artifactPath)
	if err != nil {
		return "", fmt.Errorf("package layout: %w", err)
	}

	sum, err := common.FileChecksum(artifactPath)
	if err != nil {
		return "", fmt.Errorf("checksum artifact: %w", err)
	}

	checksum := common.EncodeChecksum(sum)
	logger.InfoKV(ctx, "Package generated", "artifact", artifactPath, "sha512", checksum)

	if err = os.RemoveAll(layout.Root); err != nil {
		return "", fmt.Errorf("remove layout: %w", err)
	}

	return checksum, nil
}
