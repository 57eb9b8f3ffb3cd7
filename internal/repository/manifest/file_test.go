package manifest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for a missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml"))

	m, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, m)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns an equal manifest.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "manifest.yaml")
	repo := NewFileRepository(file)

	want := &Manifest{
		AppName:         "editor",
		PackagerVersion: "1.0.0",
		Artifact:        "editor-x86_64.AppImage",
		Checksum:        "c2hhLTUxMg==",
		BuiltAt:         time.Now().UTC().Truncate(time.Second),
		Host:            "buildhost",
		User:            "n.nufrienko",
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want.AppName, got.AppName)
	require.Equal(t, want.Artifact, got.Artifact)
	require.Equal(t, want.Checksum, got.Checksum)
	require.Equal(t, want.BuiltAt.Unix(), got.BuiltAt.Unix())
	require.Equal(t, want.Host, got.Host)
	require.Equal(t, want.User, got.User)
}
