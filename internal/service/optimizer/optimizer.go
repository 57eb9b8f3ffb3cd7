package optimizer

import (
	"context"
	"fmt"

	"github.com/nikonufrienko/editor-packager/internal/logger"
	"github.com/nikonufrienko/editor-packager/internal/service/common"
)

const (
	// stripCommand removes symbol and debug information in place.
	stripCommand = "strip"
	// compressCommand is the executable packer applied after stripping.
	compressCommand = "upx"
)

// Strategy is one named attempt in the ordered compression fallback chain.
type Strategy struct {
	// Name identifies the strategy in logs.
	Name string
	// Args are passed to the compressor before the binary path.
	Args []string
}

// DefaultStrategies returns the stock chain: maximum-ratio LZMA first,
// then the plain best-effort mode for binaries LZMA packing rejects.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "lzma-best", Args: []string{"--best", "--lzma"}},
		{Name: "best", Args: []string{"-9"}},
	}
}

// Optimizer shrinks an executable in place: symbols are stripped
// unconditionally, then the compression chain is attempted in order until
// one strategy succeeds. Exhausting the chain is a pipeline failure.
type Optimizer struct {
	runner     common.CommandRunner
	strategies []Strategy
}

// Option configures optimizer behaviour.
type Option func(*Optimizer)

// WithRunner overrides the command runner, primarily for tests.
func WithRunner(runner common.CommandRunner) Option {
	return func(o *Optimizer) {
		if runner != nil {
			o.runner = runner
		}
	}
}

// WithStrategies replaces the compression fallback chain.
func WithStrategies(strategies []Strategy) Option {
	return func(o *Optimizer) {
		if len(strategies) > 0 {
			o.strategies = strategies
		}
	}
}

// New creates an optimizer with the default strip+upx behaviour.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		runner:     &common.ExecRunner{},
		strategies: DefaultStrategies(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Optimize reduces the size of the binary at the given path.
// The binary keeps its argument-forwarding and exit-status behaviour;
// only symbols and on-disk size change. Stripping is irreversible.
func (o *Optimizer) Optimize(ctx context.Context, binaryPath string) error {
	logger.InfoKV(ctx, "Stripping symbols", "binary", binaryPath)

	if err := o.runner.Run(ctx, stripCommand, "--strip-all", binaryPath); err != nil {
		return fmt.Errorf("strip symbols: %w", err)
	}

	return o.compress(ctx, binaryPath)
}

// compress walks the strategy chain until one attempt succeeds.
func (o *Optimizer) compress(ctx context.Context, binaryPath string) error {
	var lastErr error

	for _, strategy := range o.strategies {
		args := append(append([]string(nil), strategy.Args...), binaryPath)

		err := o.runner.Run(ctx, compressCommand, args...)
		if err == nil {
			logger.InfoKV(ctx, "Compressed binary", "strategy", strategy.Name)
			return nil
		}

		logger.WarnKV(ctx, "Compression strategy failed",
			"strategy", strategy.Name, "error", err)

		lastErr = err
	}

	return fmt.Errorf("compression strategies exhausted: %w", lastErr)
}
