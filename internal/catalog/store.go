package catalog

import (
	"context"
	"fmt"

	"storefront/app/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Source fetches the full catalog document
type Source interface {
	Fetch(ctx context.Context) (domain.Catalog, error)
}

// Store holds the catalog for the lifetime of the process. Deletions are
// session-local: they are never written back to the source, so a reload
// brings deleted items back.
type Store struct {
	source  Source
	catalog domain.Catalog
	loadErr error
}

func NewStore(source Source) *Store {
	return &Store{
		source:  source,
		catalog: domain.Catalog{},
	}
}

// Load replaces the in-memory catalog with a fresh copy from the source. On
// failure the catalog is left empty and the error is kept for LoadError.
func (s *Store) Load(ctx context.Context) error {
	catalog, err := s.source.Fetch(ctx)
	if err != nil {
		s.catalog = domain.Catalog{}
		s.loadErr = fmt.Errorf("failed to load catalog: %w", err)
		log.Errorf("❌ Error loading catalog: %v", err)
		return s.loadErr
	}

	s.catalog = catalog
	s.loadErr = nil

	total := 0
	for _, tab := range catalog {
		total += len(tab.Items)
	}
	log.Infof("✅ Catalog loaded: %d tabs, %d items", len(catalog), total)
	return nil
}

// LoadError returns the error of the last Load, if any
func (s *Store) LoadError() error {
	return s.loadErr
}

func (s *Store) Loaded() bool {
	return s.loadErr == nil && len(s.catalog) > 0
}

func (s *Store) Tab(tab domain.Tab) (*domain.TabCatalog, error) {
	if s.loadErr != nil {
		return nil, domain.ErrCatalogUnavailable
	}
	content, ok := s.catalog[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTab, tab)
	}
	return content, nil
}

// Items returns the items of tab in catalog order
func (s *Store) Items(tab domain.Tab) []*domain.Item {
	content, err := s.Tab(tab)
	if err != nil {
		return nil
	}
	return content.Items
}

func (s *Store) Subcategories(tab domain.Tab) []string {
	content, err := s.Tab(tab)
	if err != nil {
		return nil
	}
	return content.Subcategories
}

func (s *Store) Item(tab domain.Tab, id int) (*domain.Item, error) {
	content, err := s.Tab(tab)
	if err != nil {
		return nil, err
	}
	for _, item := range content.Items {
		if item != nil && item.ID == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%d", domain.ErrItemNotFound, tab, id)
}

// DeleteItem removes every item with id from tab. It reports whether
// anything was removed.
func (s *Store) DeleteItem(tab domain.Tab, id int) (bool, error) {
	content, err := s.Tab(tab)
	if err != nil {
		return false, err
	}

	kept := make([]*domain.Item, 0, len(content.Items))
	for _, item := range content.Items {
		if item != nil && item.ID == id {
			continue
		}
		kept = append(kept, item)
	}

	removed := len(kept) != len(content.Items)
	content.Items = kept
	if removed {
		log.Infof("🗑️ Removed item %d from %s for this session", id, tab)
	}
	return removed, nil
}
