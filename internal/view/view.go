// Package view turns storefront state into render structures. It holds no
// domain logic: everything it shows is computed by the catalog, filter and
// cart packages.
package view

import (
	"fmt"
	"math"
	"strings"

	"storefront/app/internal/cart"
	"storefront/app/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	NoticeInfo  = "info"
	NoticeError = "error"
)

type TabButton struct {
	Tab    domain.Tab `json:"tab"`
	Label  string     `json:"label"`
	Active bool       `json:"active"`
}

type SubcategoryButton struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type ProductCard struct {
	ID       int        `json:"id"`
	Tab      domain.Tab `json:"tab"`
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Price    string     `json:"price"`
	Image    string     `json:"image"`
	Details  []string   `json:"details,omitempty"`
}

type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Modal is the item detail overlay
type Modal struct {
	ID          int        `json:"id"`
	Tab         domain.Tab `json:"tab"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Price       string     `json:"price"`
	Image       string     `json:"image"`
	Stars       string     `json:"stars"`
	Reviews     int        `json:"reviews"`
	Description string     `json:"description"`
	Details     []Detail   `json:"details,omitempty"`
}

type CartLine struct {
	ID       int        `json:"id"`
	Tab      domain.Tab `json:"tab"`
	Title    string     `json:"title"`
	Image    string     `json:"image"`
	Price    string     `json:"price"`
	Quantity int        `json:"quantity"`
	Subtotal string     `json:"subtotal"`
}

type CartPanel struct {
	Lines []CartLine `json:"lines"`
	Empty bool       `json:"empty"`
	Count int        `json:"count"`
	Total string     `json:"total"`
}

type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Page is everything the storefront shows at one point in time
type Page struct {
	Tabs          []TabButton         `json:"tabs"`
	ActiveTab     domain.Tab          `json:"active_tab"`
	TabName       string              `json:"tab_name"`
	Subcategories []SubcategoryButton `json:"subcategories"`
	Query         string              `json:"query"`
	Products      []ProductCard       `json:"products"`
	NoResults     bool                `json:"no_results"`
	LoadError     bool                `json:"load_error"`
	Cart          CartPanel           `json:"cart"`
	Badge         int                 `json:"badge"`
	Modal         *Modal              `json:"modal,omitempty"`
	Notice        *Notice             `json:"notice,omitempty"`
}

// State is the input of Build
type State struct {
	Tab           domain.Tab
	Subcategory   string
	Query         string
	Subcategories []string
	Items         []*domain.Item // Already filtered
	LoadError     error
	Cart          cart.Snapshot
	OpenItem      *domain.Item
	OpenTab       domain.Tab
	Notice        *Notice
}

func Build(s State) Page {
	page := Page{
		ActiveTab: s.Tab,
		TabName:   s.Tab.GetTabName(),
		Query:     s.Query,
		Cart:      BuildCart(s.Cart),
		Badge:     s.Cart.Totals.Count,
		Notice:    s.Notice,
	}

	for _, tab := range domain.Tabs {
		page.Tabs = append(page.Tabs, TabButton{
			Tab:    tab,
			Label:  tab.GetTabName(),
			Active: tab == s.Tab,
		})
	}

	if s.LoadError != nil {
		page.LoadError = true
		page.Subcategories = []SubcategoryButton{}
		page.Products = []ProductCard{}
		return page
	}

	page.Subcategories = BuildSubcategories(s.Subcategories, s.Subcategory)

	page.Products = make([]ProductCard, 0, len(s.Items))
	for _, item := range s.Items {
		page.Products = append(page.Products, BuildCard(item, s.Tab))
	}
	page.NoResults = len(page.Products) == 0

	if s.OpenItem != nil {
		modal := BuildModal(s.OpenItem, s.OpenTab)
		page.Modal = &modal
	}

	return page
}

// BuildSubcategories prepends the "All" button to the tab's subcategories
func BuildSubcategories(names []string, selected string) []SubcategoryButton {
	if selected == "" {
		selected = domain.SubcategoryAll
	}

	buttons := make([]SubcategoryButton, 0, len(names)+1)
	buttons = append(buttons, SubcategoryButton{
		Name:   domain.SubcategoryAll,
		Label:  "All",
		Active: selected == domain.SubcategoryAll,
	})
	for _, name := range names {
		buttons = append(buttons, SubcategoryButton{
			Name:   name,
			Label:  name,
			Active: name == selected,
		})
	}
	return buttons
}

func BuildCard(item *domain.Item, tab domain.Tab) ProductCard {
	card := ProductCard{
		ID:       item.ID,
		Tab:      tab,
		Title:    item.Title,
		Category: item.Category,
		Price:    FormatPrice(item.Price),
		Image:    item.Image,
	}

	switch {
	case tab == domain.TabBooks:
		card.Details = []string{item.Author, formatYear(item.Year)}
	case tab == domain.TabClothing && len(item.Size) > 0:
		card.Details = []string{"Sizes: " + strings.Join(item.Size, ", ")}
	case tab == domain.TabHome && item.Dimensions != "":
		card.Details = []string{item.Dimensions}
	}

	return card
}

func BuildModal(item *domain.Item, tab domain.Tab) Modal {
	modal := Modal{
		ID:          item.ID,
		Tab:         tab,
		Title:       item.Title,
		Category:    item.Category,
		Price:       FormatPrice(item.Price),
		Image:       item.Image,
		Stars:       Stars(item.Rating.Rate),
		Reviews:     item.Rating.Count,
		Description: item.Description,
	}

	switch {
	case tab == domain.TabBooks:
		modal.Details = []Detail{
			{Label: "Author", Value: item.Author},
			{Label: "Year", Value: formatYear(item.Year)},
		}
	case tab == domain.TabClothing && len(item.Size) > 0:
		modal.Details = []Detail{{Label: "Sizes", Value: strings.Join(item.Size, ", ")}}
	case tab == domain.TabHome && item.Dimensions != "":
		modal.Details = []Detail{{Label: "Dimensions", Value: item.Dimensions}}
	}

	return modal
}

func BuildCart(snapshot cart.Snapshot) CartPanel {
	panel := CartPanel{
		Lines: make([]CartLine, 0, len(snapshot.Entries)),
		Empty: len(snapshot.Entries) == 0,
		Count: snapshot.Totals.Count,
		Total: FormatPrice(snapshot.Totals.Total),
	}

	for _, entry := range snapshot.Entries {
		panel.Lines = append(panel.Lines, CartLine{
			ID:       entry.ID,
			Tab:      entry.Category,
			Title:    entry.Title,
			Image:    entry.Image,
			Price:    FormatPrice(entry.Price),
			Quantity: entry.Quantity,
			Subtotal: FormatPrice(entry.Subtotal()),
		})
	}

	return panel
}

// Stars renders a 0-5 rating as filled and empty stars, rounding half up
func Stars(rate float64) string {
	filled := int(math.Round(rate))
	filled = max(0, min(5, filled))
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

func FormatPrice(price decimal.Decimal) string {
	return "$" + price.StringFixed(2)
}

func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprintf("%d", year)
}
