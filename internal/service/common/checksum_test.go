//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"crypto/sha512"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileChecksum verifies the checksum matches a directly computed SHA-512.
func TestFileChecksum(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "artifact.bin")
	payload := []byte("portable application image")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	sum, err := FileChecksum(path)
	require.NoError(t, err)

	want := sha512.Sum512(payload)
	require.Equal(t, want[:], sum)
	require.NotEmpty(t, EncodeChecksum(sum))
}

// TestFileChecksum_MissingFile expects an error for a nonexistent path.
func TestFileChecksum_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := FileChecksum(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
