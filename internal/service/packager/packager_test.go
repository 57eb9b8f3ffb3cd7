package packager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikonufrienko/editor-packager/internal/service/appdir"
)

// toolRunner simulates the packaging tool: it records the invocation and
// writes the artifact named by the last argument.
type toolRunner struct {
	name string
	args []string
	err  error
}

func (r *toolRunner) Run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args

	if r.err != nil {
		return r.err
	}

	return os.WriteFile(args[len(args)-1], []byte("appimage-bytes"), 0o755)
}

// newTestLayout builds a minimal on-disk layout in a temp dir.
func newTestLayout(t *testing.T) *appdir.Layout {
	t.Helper()

	layout := appdir.NewLayout(t.TempDir(), "editor", "editor")
	require.NoError(t, os.MkdirAll(layout.BinDir, 0o755))
	require.NoError(t, os.WriteFile(layout.BinaryPath, []byte("bin"), 0o755))

	return layout
}

// TestPackage_Success verifies the tool invocation shape, the checksum
// result, the environment flag and the layout cleanup.
func TestPackage_Success(t *testing.T) {
	layout := newTestLayout(t)
	artifact := filepath.Join(filepath.Dir(layout.Root), "editor-x86_64.AppImage")

	runner := &toolRunner{}
	p := New("appimagetool-x86_64.AppImage", WithRunner(runner))

	checksum, err := p.Package(context.Background(), layout, artifact)
	require.NoError(t, err)
	require.NotEmpty(t, checksum)

	require.Equal(t, "appimagetool-x86_64.AppImage", runner.name)
	require.Equal(t,
		[]string{"--comp", "xz", "--no-appstream", layout.Root, artifact},
		runner.args)

	require.Equal(t, "1", os.Getenv("APPIMAGE_EXTRACT_AND_RUN"))

	// Artifact remains, intermediate layout is gone.
	_, err = os.Stat(artifact)
	require.NoError(t, err)
	_, err = os.Stat(layout.Root)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestPackage_FailureKeepsLayout verifies a tool failure leaves the layout
// in place for inspection.
func TestPackage_FailureKeepsLayout(t *testing.T) {
	layout := newTestLayout(t)
	artifact := filepath.Join(filepath.Dir(layout.Root), "editor-x86_64.AppImage")

	wantErr := errors.New("squashfs refused")
	runner := &toolRunner{err: wantErr}
	p := New("appimagetool-x86_64.AppImage", WithRunner(runner))

	_, err := p.Package(context.Background(), layout, artifact)
	require.Error(t, err)
	require.ErrorIs(t, err, wantErr)

	_, err = os.Stat(layout.Root)
	require.NoError(t, err)
}
