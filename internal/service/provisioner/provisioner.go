package provisioner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/nikonufrienko/editor-packager/internal/logger"
)

// ToolFileMode marks the provisioned tool executable.
const ToolFileMode os.FileMode = 0o755

var errBadHTTPStatus = errors.New("unexpected http status")

// Provisioner guarantees that an executable copy of the packaging tool
// exists at ToolPath before the pipeline proceeds. The tool is downloaded
// once and reused across runs; an existing file is trusted as-is.
type Provisioner struct {
	toolPath string
	toolURL  string
	client   *http.Client
}

// Option configures provisioner behaviour.
type Option func(*Provisioner)

// WithHTTPClient overrides the HTTP client used for the download.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provisioner) {
		if client != nil {
			p.client = client
		}
	}
}

// New creates a provisioner for the tool at toolPath, fetched from toolURL.
func New(toolPath, toolURL string, opts ...Option) *Provisioner {
	p := &Provisioner{
		toolPath: toolPath,
		toolURL:  toolURL,
		client:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Ensure makes the tool available, downloading it on first use.
// A failed download is fatal to the pipeline; there is no retry.
func (p *Provisioner) Ensure(ctx context.Context) error {
	if _, err := os.Stat(p.toolPath); err == nil {
		logger.InfoKV(ctx, "Packaging tool already provisioned", "path", p.toolPath)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", p.toolPath, err)
	}

	logger.InfoKV(ctx, "Downloading packaging tool", "url", p.toolURL)

	data, err := p.download(ctx)
	if err != nil {
		return fmt.Errorf("download packaging tool: %w", err)
	}

	if err = p.install(data); err != nil {
		return fmt.Errorf("install packaging tool: %w", err)
	}

	logger.InfoKV(ctx, "Packaging tool provisioned", "path", p.toolPath)

	return nil
}

// download fetches the complete tool payload from the fixed URL.
// The body is read fully here so the tool path is never touched until the
// whole payload has arrived; an interrupted transfer fails before install.
func (p *Provisioner) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.toolURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s, %s: %w", p.toolURL, response.Status, errBadHTTPStatus)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// install writes the downloaded payload to the tool path and marks it
// executable. Later runs trust any existing file without re-validation, so
// a failed install must not leave anything behind at the tool path.
func (p *Provisioner) install(data []byte) error {
	// go-update needs an existing target to swap.
	target, err := os.Create(p.toolPath)
	if err != nil {
		return err
	}

	if err = target.Close(); err != nil {
		return err
	}

	options := goupdate.Options{
		TargetPath: p.toolPath,
		TargetMode: ToolFileMode,
	}

	if err = goupdate.Apply(bytes.NewReader(data), options); err != nil {
		_ = os.Remove(p.toolPath)
		return err
	}

	// Drop the backup go-update leaves next to the target.
	oldPath := p.toolPath + ".old"
	if _, err = os.Stat(oldPath); err == nil {
		_ = os.Remove(oldPath)
	}

	return nil
}
