package formdef

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
)

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	files  fs.FS
	client *http.Client
}

// WithFS supplies the filesystem used to resolve fs sources.
func WithFS(files fs.FS) LoadOption {
	return func(cfg *loadConfig) {
		cfg.files = files
	}
}

// WithHTTPClient overrides the client used for URL sources.
func WithHTTPClient(client *http.Client) LoadOption {
	return func(cfg *loadConfig) {
		if client != nil {
			cfg.client = client
		}
	}
}

// Load reads the document a Source points at. URL sources honour the
// context; file and fs sources read eagerly.
func Load(ctx context.Context, src Source, options ...LoadOption) (Document, error) {
	if src == nil {
		return Document{}, fmt.Errorf("formdef: source is required")
	}
	cfg := loadConfig{client: http.DefaultClient}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch src.Kind() {
	case SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return Document{}, fmt.Errorf("formdef: read %s: %w", src.Location(), err)
		}
		return NewDocument(src, data)
	case SourceKindFS:
		if cfg.files == nil {
			return Document{}, fmt.Errorf("formdef: fs source %q requires WithFS", src.Location())
		}
		data, err := fs.ReadFile(cfg.files, src.Location())
		if err != nil {
			return Document{}, fmt.Errorf("formdef: read %s: %w", src.Location(), err)
		}
		return NewDocument(src, data)
	case SourceKindURL:
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Location(), nil)
		if err != nil {
			return Document{}, fmt.Errorf("formdef: build request: %w", err)
		}
		resp, err := cfg.client.Do(req)
		if err != nil {
			return Document{}, fmt.Errorf("formdef: fetch %s: %w", src.Location(), err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return Document{}, fmt.Errorf("formdef: fetch %s: unexpected status %d", src.Location(), resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return Document{}, fmt.Errorf("formdef: read response: %w", err)
		}
		return NewDocument(src, data)
	default:
		return Document{}, fmt.Errorf("formdef: unsupported source kind %q", src.Kind())
	}
}
