package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/app/internal/cart"
	"storefront/app/internal/catalog"
	"storefront/app/internal/domain"
	"storefront/app/internal/domain/event"
	"storefront/app/internal/filter"
	"storefront/app/internal/queue"
	"storefront/app/internal/repository"
	"storefront/app/internal/view"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	NoticeCartEmpty   = "Your cart is empty!"
	NoticeThankYou    = "Thank you for your purchase!"
	NoticeItemDeleted = "Item removed from the site"
)

// Subscriber receives the rendered page after every action
type Subscriber func(view.Page)

// Service owns the storefront session: selected tab, subcategory and search
// query, the open detail overlay and the pending notice. Every exported
// action runs under one lock, so actions never interleave.
type Service struct {
	mu sync.Mutex

	catalog   *catalog.Store
	cart      *cart.Store
	publisher queue.Publisher
	orders    repository.OrderRepository
	now       func() time.Time

	tab         domain.Tab
	subcategory string
	query       string
	openItem    *domain.Item
	openTab     domain.Tab
	notice      *view.Notice

	subscribers []Subscriber
}

func NewService(
	catalogStore *catalog.Store,
	cartStore *cart.Store,
	publisher queue.Publisher,
	orders repository.OrderRepository,
) *Service {
	s := &Service{
		catalog:     catalogStore,
		cart:        cartStore,
		publisher:   publisher,
		orders:      orders,
		now:         time.Now,
		tab:         domain.TabElectronics,
		subcategory: domain.SubcategoryAll,
	}

	cartStore.Subscribe(s.onCartUpdated)

	return s
}

func (s *Service) Subscribe(subscriber Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, subscriber)
}

// Init loads the catalog. A load failure is not returned: the page switches
// to its error placeholder and the cart stays usable.
func (s *Service) Init(ctx context.Context) view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Load(ctx); err != nil {
		log.Errorf("❌ Storefront starts without catalog: %v", err)
	}

	s.subcategory = domain.SubcategoryAll
	s.query = ""
	s.openItem = nil

	return s.commit()
}

// Page returns the current page without changing state
func (s *Service) Page() view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.render()
}

func (s *Service) SelectTab(tab domain.Tab) (view.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !tab.IsKnown() {
		return s.render(), fmt.Errorf("%w: %s", domain.ErrUnknownTab, tab)
	}

	s.tab = tab
	s.subcategory = domain.SubcategoryAll
	s.query = ""
	s.openItem = nil

	return s.commit(), nil
}

func (s *Service) SelectSubcategory(name string) view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = domain.SubcategoryAll
	}
	s.subcategory = name

	return s.commit()
}

func (s *Service) Search(query string) view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query

	return s.commit()
}

func (s *Service) ClearSearch() view.Page {
	return s.Search("")
}

// VisibleItems applies the current subcategory and query to the active tab
func (s *Service) VisibleItems() []*domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.visibleItems()
}

func (s *Service) OpenItem(tab domain.Tab, id int) (view.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.Item(tab, id)
	if err != nil {
		return s.render(), err
	}

	s.openItem = item
	s.openTab = tab

	return s.commit(), nil
}

func (s *Service) CloseItem() view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openItem = nil

	return s.commit()
}

// AddToCart adds the catalog item (tab, id) to the cart and closes the
// detail overlay
func (s *Service) AddToCart(ctx context.Context, tab domain.Tab, id int) (view.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.Item(tab, id)
	if err != nil {
		return s.render(), err
	}

	entry := s.cart.Add(ctx, item, tab)
	s.openItem = nil
	s.setNotice(view.NoticeInfo, fmt.Sprintf("%s added to cart", item.Title))

	s.publish(ctx, &event.ItemAdded{
		ItemID:   item.ID,
		Tab:      tab,
		Title:    item.Title,
		Quantity: entry.Quantity,
	})

	return s.commit(), nil
}

// RemoveFromCart drops the cart line (tab, id); a missing line is ignored
func (s *Service) RemoveFromCart(ctx context.Context, tab domain.Tab, id int) view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(ctx, id, tab)

	return s.commit()
}

// ChangeQuantity adjusts the cart line (tab, id) by delta; a missing line is
// ignored
func (s *Service) ChangeQuantity(ctx context.Context, tab domain.Tab, id, delta int) view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.ChangeQuantity(ctx, id, tab, delta)

	return s.commit()
}

// Checkout archives and clears a non-empty cart. An empty cart is left
// untouched and ErrCartEmpty is returned alongside the page.
func (s *Service) Checkout(ctx context.Context) (view.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		s.setNotice(view.NoticeError, NoticeCartEmpty)
		return s.commit(), domain.ErrCartEmpty
	}

	snapshot := s.cart.Snapshot()
	order := &repository.Order{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Entries:   snapshot.Entries,
		Count:     snapshot.Totals.Count,
		Total:     snapshot.Totals.Total,
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		log.Errorf("❌ Failed to archive order %s: %v", order.ID, err)
	} else {
		log.Infof("✅ Order %s placed: %d items, total %s", order.ID, order.Count, order.Total.StringFixed(2))
	}

	s.cart.Clear(ctx)
	s.setNotice(view.NoticeInfo, NoticeThankYou)

	s.publish(ctx, &event.OrderPlaced{
		OrderID: order.ID,
		Count:   order.Count,
		Total:   order.Total,
	})

	return s.commit(), nil
}

// DeleteItem removes (tab, id) from the catalog for the rest of the session.
// Cart lines already holding the item keep their snapshot.
func (s *Service) DeleteItem(ctx context.Context, tab domain.Tab, id int) (view.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.catalog.DeleteItem(tab, id)
	if err != nil {
		return s.render(), err
	}
	if !removed {
		return s.render(), fmt.Errorf("%w: %s/%d", domain.ErrItemNotFound, tab, id)
	}

	if s.openItem != nil && s.openTab == tab && s.openItem.ID == id {
		s.openItem = nil
	}
	s.setNotice(view.NoticeInfo, NoticeItemDeleted)

	s.publish(ctx, &event.CatalogItemDeleted{ItemID: id, Tab: tab})

	return s.commit(), nil
}

func (s *Service) visibleItems() []*domain.Item {
	return filter.Apply(s.catalog.Items(s.tab), filter.Criteria{
		Subcategory: s.subcategory,
		Query:       s.query,
	})
}

func (s *Service) setNotice(kind, message string) {
	s.notice = &view.Notice{Kind: kind, Message: message}
}

func (s *Service) render() view.Page {
	var openItem *domain.Item
	if s.openItem != nil && s.catalog.Loaded() {
		openItem = s.openItem
	}

	return view.Build(view.State{
		Tab:           s.tab,
		Subcategory:   s.subcategory,
		Query:         s.query,
		Subcategories: s.catalog.Subcategories(s.tab),
		Items:         s.visibleItems(),
		LoadError:     s.catalog.LoadError(),
		Cart:          s.cart.Snapshot(),
		OpenItem:      openItem,
		OpenTab:       s.openTab,
		Notice:        s.notice,
	})
}

// commit renders the page, hands it to subscribers and consumes the notice
func (s *Service) commit() view.Page {
	page := s.render()
	s.notice = nil

	for _, subscriber := range s.subscribers {
		subscriber(page)
	}
	return page
}

func (s *Service) onCartUpdated(snapshot cart.Snapshot) {
	s.publish(context.Background(), &event.CartUpdated{
		Entries: len(snapshot.Entries),
		Count:   snapshot.Totals.Count,
		Total:   snapshot.Totals.Total,
	})
}

func (s *Service) publish(ctx context.Context, e event.Event) {
	if _, err := s.publisher.Publish(ctx, e); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debugf("Event %s dropped: %v", e.EventType(), err)
			return
		}
		log.Warnf("⚠️ Failed to publish %s: %v", e.EventType(), err)
	}
}
