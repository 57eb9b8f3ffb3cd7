//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nikonufrienko/editor-packager/internal/logger"
)

// CommandRunner abstracts external process invocation so pipeline stages can
// be exercised in tests without the real tools installed.
type CommandRunner interface {
	// Run executes the named command synchronously and returns an error
	// carrying the tool's combined output when it fails.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands through os/exec, blocking until they finish.
// Tool output is logged at debug level on success and surfaced inside the
// returned error on failure.
type ExecRunner struct {
	// ExtraEnv entries are appended to the inherited process environment.
	ExtraEnv []string
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.ExtraEnv) > 0 {
		cmd.Env = append(os.Environ(), r.ExtraEnv...)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}

	if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
		logger.Debugf(ctx, "%s output: %s", name, trimmed)
	}

	return nil
}
