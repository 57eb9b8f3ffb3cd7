package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nikonufrienko/editor-packager/internal/config"
)

// Manifest records the outcome of the last successful packaging run.
type Manifest struct {
	// AppName is the packaged application.
	AppName string `yaml:"app"`
	// PackagerVersion is the packager build that produced the artifact.
	PackagerVersion string `yaml:"packager_version"`
	// Artifact is the output filename.
	Artifact string `yaml:"artifact"`
	// Checksum is the base64-encoded SHA-512 of the artifact.
	Checksum string `yaml:"checksum_sha512"`
	// BuiltAt is the UTC completion timestamp.
	BuiltAt time.Time `yaml:"built_at"`
	// Host and User identify where and by whom the artifact was built.
	Host string `yaml:"host,omitempty"`
	User string `yaml:"user,omitempty"`
}

// Repository defines persistence operations for the build manifest.
type Repository interface {
	Load(ctx context.Context) (*Manifest, error)
	Save(ctx context.Context, m *Manifest) error
}

// ErrNotFound is returned when no manifest has been recorded yet.
var ErrNotFound = errors.New("manifest not found")

// FileRepository persists the manifest to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the manifest file.
	path string
	// mu protects concurrent access to the manifest file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the manifest from disk.
func (r *FileRepository) Load(_ context.Context) (*Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	var m Manifest
	if err = yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("decode manifest file: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to disk.
func (r *FileRepository) Save(_ context.Context, m *Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest file: %w", err)
	}

	return nil
}
