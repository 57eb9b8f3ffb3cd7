package appdir

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikonufrienko/editor-packager/internal/config"
	"github.com/nikonufrienko/editor-packager/internal/logger"
	"github.com/nikonufrienko/editor-packager/internal/service/optimizer"
)

const (
	// ExecutableFileMode is applied to the packaged binary and the launcher.
	ExecutableFileMode os.FileMode = 0o755

	// regularFileMode is applied to the desktop entry and the icon.
	regularFileMode os.FileMode = 0o644
)

// Assembler builds the canonical AppDir layout from the packaging settings.
type Assembler struct {
	cfg *config.Config
	opt *optimizer.Optimizer
}

// New creates an assembler that optimizes the copied binary with opt.
func New(cfg *config.Config, opt *optimizer.Optimizer) *Assembler {
	return &Assembler{
		cfg: cfg,
		opt: opt,
	}
}

// Assemble produces a complete layout: a fresh AppDir containing the
// optimized binary, the desktop entry, an icon that always exists, and an
// executable launcher. Any pre-existing layout or artifact with the target
// name is removed first so every build starts clean.
func (a *Assembler) Assemble(ctx context.Context) (*Layout, error) {
	layout := NewLayout(a.cfg.WorkDir, a.cfg.AppName, a.cfg.IconName)

	if err := a.reset(ctx, layout); err != nil {
		return nil, fmt.Errorf("reset layout: %w", err)
	}

	if err := os.MkdirAll(layout.BinDir, ExecutableFileMode); err != nil {
		return nil, fmt.Errorf("create layout skeleton: %w", err)
	}

	if err := a.installBinary(ctx, layout); err != nil {
		return nil, err
	}

	if err := a.writeDesktopEntry(layout); err != nil {
		return nil, fmt.Errorf("write desktop entry: %w", err)
	}

	if err := a.resolveIcon(ctx, layout); err != nil {
		return nil, fmt.Errorf("resolve icon: %w", err)
	}

	if err := a.writeLauncher(layout); err != nil {
		return nil, fmt.Errorf("write launcher: %w", err)
	}

	logger.InfoKV(ctx, "AppDir assembled", "root", layout.Root)

	return layout, nil
}

// reset removes a stale layout and a stale output artifact.
func (a *Assembler) reset(ctx context.Context, layout *Layout) error {
	logger.InfoKV(ctx, "Resetting layout", "root", layout.Root)

	if err := os.RemoveAll(layout.Root); err != nil {
		return err
	}

	artifact := a.cfg.ArtifactPath()
	if err := os.Remove(artifact); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// installBinary copies the prebuilt executable into the layout and shrinks it.
func (a *Assembler) installBinary(ctx context.Context, layout *Layout) error {
	logger.InfoKV(ctx, "Copying release binary",
		"from", a.cfg.BinaryPath, "to", layout.BinaryPath)

	if err := copyFile(a.cfg.BinaryPath, layout.BinaryPath, ExecutableFileMode); err != nil {
		return fmt.Errorf("copy binary: %w", err)
	}

	if err := a.opt.Optimize(ctx, layout.BinaryPath); err != nil {
		return fmt.Errorf("optimize binary: %w", err)
	}

	return nil
}

// resolveIcon copies the configured icon asset when it exists and
// synthesizes a placeholder otherwise, so the icon referenced by the
// desktop entry is always present.
func (a *Assembler) resolveIcon(ctx context.Context, layout *Layout) error {
	if _, err := os.Stat(a.cfg.IconPath); err == nil {
		logger.InfoKV(ctx, "Copying icon asset", "from", a.cfg.IconPath)
		return copyFile(a.cfg.IconPath, layout.IconPath, regularFileMode)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	logger.InfoKV(ctx, "Icon asset not found, synthesizing placeholder",
		"expected", a.cfg.IconPath)

	return writePlaceholderIcon(layout.IconPath, a.cfg.AppName)
}

// copyFile duplicates a regular file with the requested mode.
func copyFile(src, dst string, mode os.FileMode) error {
	contents, err := os.ReadFile(filepath.Clean(src))
	if err != nil {
		return err
	}

	return os.WriteFile(dst, contents, mode)
}
