package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"bebidashop/internal/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrDataSourceUnreachable is returned when the catalog document cannot be fetched
	ErrDataSourceUnreachable = errors.New("catalog data source unreachable")

	// ErrMalformedDocument is returned when the catalog document cannot be decoded
	ErrMalformedDocument = errors.New("malformed catalog document")
)

// Source loads the catalog document
type Source interface {
	Load(ctx context.Context) (*models.CatalogDocument, error)
	Name() string
}

// ParseDocument decodes a catalog document. Missing collections decode as empty.
func ParseDocument(data []byte) (*models.CatalogDocument, error) {
	var doc models.CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Offers == nil {
		doc.Offers = []models.CatalogItem{}
	}
	if doc.Combos == nil {
		doc.Combos = []models.CatalogItem{}
	}
	return &doc, nil
}

// FileSource reads the document from a local path
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Load(ctx context.Context) (*models.CatalogDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnreachable, err)
	}
	return ParseDocument(data)
}

// HTTPSource fetches the document from a URL
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source that GETs the document with the given timeout
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) Load(ctx context.Context) (*models.CatalogDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrDataSourceUnreachable, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnreachable, err)
	}
	return ParseDocument(data)
}
