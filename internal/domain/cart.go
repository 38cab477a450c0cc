package domain

import "github.com/shopspring/decimal"

// CartKey identifies a cart line. The same item id added from two tabs makes
// two separate lines.
type CartKey struct {
	ID  int `json:"id"`
	Tab Tab `json:"category"`
}

// CartEntry is a snapshot of an item taken when it was first added. Category
// holds the tab the item was added from, not its subcategory tag.
type CartEntry struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    Tab             `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Rating      Rating          `json:"rating"`
	Author      string          `json:"author,omitempty"`
	Year        int             `json:"year,omitempty"`
	Size        []string        `json:"size,omitempty"`
	Dimensions  string          `json:"dimensions,omitempty"`
	Quantity    int             `json:"quantity"`
}

func NewCartEntry(item *Item, tab Tab) CartEntry {
	return CartEntry{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    tab,
		Price:       item.Price,
		Image:       item.Image,
		Rating:      item.Rating,
		Author:      item.Author,
		Year:        item.Year,
		Size:        append([]string(nil), item.Size...),
		Dimensions:  item.Dimensions,
		Quantity:    1,
	}
}

func (e CartEntry) Key() CartKey {
	return CartKey{ID: e.ID, Tab: e.Category}
}

func (e CartEntry) Subtotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

type CartTotals struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ComputeTotals sums quantities and price x quantity over entries
func ComputeTotals(entries []CartEntry) CartTotals {
	totals := CartTotals{Total: decimal.Zero}
	for _, entry := range entries {
		totals.Count += entry.Quantity
		totals.Total = totals.Total.Add(entry.Subtotal())
	}
	return totals
}
