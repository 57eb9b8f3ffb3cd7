package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/nikonufrienko/editor-packager/internal/config"
	"github.com/nikonufrienko/editor-packager/internal/logger"
	"github.com/nikonufrienko/editor-packager/internal/repository/manifest"
	"github.com/nikonufrienko/editor-packager/internal/service/appdir"
	"github.com/nikonufrienko/editor-packager/internal/service/common"
	"github.com/nikonufrienko/editor-packager/internal/service/optimizer"
	"github.com/nikonufrienko/editor-packager/internal/service/packager"
	"github.com/nikonufrienko/editor-packager/internal/service/provisioner"
	"github.com/nikonufrienko/editor-packager/internal/version"
)

// Options contains inputs for the packaging pipeline entry point.
type Options struct {
	// Config is the packaging specification. Defaults are used when nil.
	Config *config.Config
	// Runner overrides external command execution for every stage.
	// Production runs leave it nil and use the real tools.
	Runner common.CommandRunner
}

// errConfigRequired is returned when no configuration could be resolved.
var errConfigRequired = errors.New("packaging configuration is required")

// builder wires the pipeline stages for a single run.
// It is unexported; callers should use Run, which encapsulates setup.
type builder struct {
	cfg       *config.Config
	prov      *provisioner.Provisioner
	asm       *appdir.Assembler
	pkg       *packager.Packager
	manifests manifest.Repository
}

// Run executes the full packaging pipeline: provision the tool, assemble
// the AppDir (optimizing the binary along the way), generate the artifact
// and record the build manifest. Stages run strictly in sequence and the
// first failure aborts the run.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "editor-packager")

	b, err := newBuilder(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	if err = b.Run(ctx); err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	logger.Info(ctx, "Packaging completed successfully")

	return nil
}

// newBuilder validates the configuration and wires the stages.
func newBuilder(ctx context.Context, opts *Options) (*builder, error) {
	if opts == nil || opts.Config == nil {
		return nil, errConfigRequired
	}

	cfg := opts.Config
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	warnIfConcurrentRun(ctx)

	// The cached tool lives in the invocation directory by default; the
	// packager execs it, so the path must not be mistaken for a $PATH lookup.
	toolPath, err := filepath.Abs(cfg.ToolPath)
	if err != nil {
		return nil, fmt.Errorf("resolve tool path: %w", err)
	}

	return &builder{
		cfg:  cfg,
		prov: provisioner.New(toolPath, cfg.ToolURL),
		asm: appdir.New(cfg,
			optimizer.New(optimizer.WithRunner(opts.Runner))),
		pkg:       packager.New(toolPath, packager.WithRunner(opts.Runner)),
		manifests: manifest.NewFileRepository(cfg.ManifestPath),
	}, nil
}

// Run drives the stages in order.
func (b *builder) Run(ctx context.Context) error {
	ctx = logger.WithKV(ctx, "app", b.cfg.AppName)

	if err := b.prov.Ensure(logger.WithName(ctx, "provision")); err != nil {
		return err
	}

	layout, err := b.asm.Assemble(logger.WithName(ctx, "assemble"))
	if err != nil {
		return err
	}

	checksum, err := b.pkg.Package(logger.WithName(ctx, "package"), layout, b.cfg.ArtifactPath())
	if err != nil {
		return err
	}

	b.recordManifest(ctx, checksum)

	return nil
}

// recordManifest persists the build record. A manifest write failure does
// not fail the run; the artifact is already complete.
func (b *builder) recordManifest(ctx context.Context, checksum string) {
	m := &manifest.Manifest{
		AppName:         b.cfg.AppName,
		PackagerVersion: version.Short(),
		Artifact:        b.cfg.OutputName,
		Checksum:        checksum,
		BuiltAt:         time.Now().UTC(),
	}

	if actor, err := common.DetectActor(); err == nil {
		m.Host = actor.Hostname
		m.User = actor.Username
	}

	if err := b.manifests.Save(ctx, m); err != nil {
		logger.WarnKV(ctx, "Unable to record build manifest", "error", err)
		return
	}

	logger.InfoKV(ctx, "Build manifest recorded", "path", b.cfg.ManifestPath)
}

// warnIfConcurrentRun looks for another live packager process. Concurrent
// runs in one directory corrupt each other's layout; there is no locking,
// only this advisory.
func warnIfConcurrentRun(ctx context.Context) {
	exePath, err := os.Executable()
	if err != nil {
		return
	}

	selfName := filepath.Base(exePath)

	processes, err := ps.Processes()
	if err != nil {
		logger.Debugf(ctx, "Unable to inspect processes: %v", err)
		return
	}

	selfPid := os.Getpid()

	for _, process := range processes {
		if process.Pid() == selfPid {
			continue
		}

		if process.Executable() != selfName {
			continue
		}

		logger.WarnKV(ctx,
			"Another packager process appears to be running; concurrent runs in the same directory are unsafe",
			"pid", process.Pid())

		return
	}
}
