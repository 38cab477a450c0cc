// Package cart holds the shopping cart state machine and keeps its persisted
// snapshot in sync with every mutation.
package cart

import (
	"context"

	"storefront/app/internal/domain"
	"storefront/app/internal/state"

	log "github.com/sirupsen/logrus"
)

// Snapshot is the cart as seen by observers after a mutation
type Snapshot struct {
	Entries []domain.CartEntry `json:"entries"`
	Totals  domain.CartTotals  `json:"totals"`
}

// Observer is notified synchronously after every mutation
type Observer func(Snapshot)

// Store is not safe for concurrent use; callers run one action at a time.
type Store struct {
	storage   state.CartStorage
	entries   []domain.CartEntry
	observers []Observer
}

// NewStore rehydrates the cart from storage. Unreadable or malformed data
// yields an empty cart.
func NewStore(ctx context.Context, storage state.CartStorage) *Store {
	s := &Store{storage: storage}

	entries, err := storage.LoadCart(ctx)
	if err != nil {
		log.Warnf("⚠️ Could not restore cart, starting empty: %v", err)
		entries = nil
	}

	for _, entry := range entries {
		if entry.Quantity <= 0 {
			log.Debugf("Dropping restored cart entry %d/%s with quantity %d", entry.ID, entry.Category, entry.Quantity)
			continue
		}
		s.entries = append(s.entries, entry)
	}

	log.Infof("🛒 Cart restored with %d entries", len(s.entries))
	return s
}

func (s *Store) Subscribe(observer Observer) {
	s.observers = append(s.observers, observer)
}

// Add increments the line for (item.ID, tab) or appends a new line with
// quantity 1. It returns the resulting line.
func (s *Store) Add(ctx context.Context, item *domain.Item, tab domain.Tab) domain.CartEntry {
	key := domain.CartKey{ID: item.ID, Tab: tab}

	var result domain.CartEntry
	if i := s.indexOf(key); i >= 0 {
		s.entries[i].Quantity++
		result = s.entries[i]
	} else {
		result = domain.NewCartEntry(item, tab)
		s.entries = append(s.entries, result)
	}

	s.commit(ctx)
	return result
}

// Remove deletes the line for (id, tab). A missing line is not an error.
func (s *Store) Remove(ctx context.Context, id int, tab domain.Tab) bool {
	removed := s.remove(domain.CartKey{ID: id, Tab: tab})
	s.commit(ctx)
	return removed
}

// ChangeQuantity adds delta to the line for (id, tab), removing it when the
// quantity drops to zero or below. It reports whether the line existed.
func (s *Store) ChangeQuantity(ctx context.Context, id int, tab domain.Tab, delta int) bool {
	key := domain.CartKey{ID: id, Tab: tab}

	i := s.indexOf(key)
	if i < 0 {
		return false
	}

	s.entries[i].Quantity += delta
	if s.entries[i].Quantity <= 0 {
		s.remove(key)
	}

	s.commit(ctx)
	return true
}

func (s *Store) Clear(ctx context.Context) {
	s.entries = nil
	s.commit(ctx)
}

// Totals is computed from the current entries on every call
func (s *Store) Totals() domain.CartTotals {
	return domain.ComputeTotals(s.entries)
}

func (s *Store) IsEmpty() bool {
	return len(s.entries) == 0
}

// Entries returns a copy of the lines in insertion order
func (s *Store) Entries() []domain.CartEntry {
	out := make([]domain.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Entries: s.Entries(),
		Totals:  s.Totals(),
	}
}

func (s *Store) indexOf(key domain.CartKey) int {
	for i, entry := range s.entries {
		if entry.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Store) remove(key domain.CartKey) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return true
}

// commit rewrites the persisted snapshot and notifies observers. A storage
// failure keeps the in-memory cart authoritative for the rest of the session.
func (s *Store) commit(ctx context.Context) {
	if err := s.storage.SaveCart(ctx, s.entries); err != nil {
		log.Warnf("⚠️ Failed to persist cart, continuing in memory: %v", err)
	}

	snapshot := s.Snapshot()
	log.Debugf("Cart updated: %d entries, %d items, total %s",
		len(snapshot.Entries), snapshot.Totals.Count, snapshot.Totals.Total.StringFixed(2))

	for _, observer := range s.observers {
		observer(snapshot)
	}
}
