package client

import (
	"context"
	"fmt"
	"os"

	"storefront/app/internal/domain"
)

type fileSource struct {
	path string
}

// NewFileSource reads the catalog document from a local path
func NewFileSource(path string) CatalogSource {
	return &fileSource{path: path}
}

func (s *fileSource) Fetch(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", s.path, err)
	}

	return ParseCatalog(data)
}
