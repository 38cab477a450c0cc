package domain

import "github.com/shopspring/decimal"

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Item is a product as delivered by the catalog source. ID is only unique
// within its tab.
type Item struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"` // Subcategory tag
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Rating      Rating          `json:"rating"`

	// Books
	Author string `json:"author,omitempty"`
	Year   int    `json:"year,omitempty"`
	// Clothing
	Size []string `json:"size,omitempty"`
	// Home goods
	Dimensions string `json:"dimensions,omitempty"`
}

// TabCatalog is the content of a single tab
type TabCatalog struct {
	Subcategories []string `json:"subcategories"`
	Items         []*Item  `json:"items"`
}

// Catalog maps every tab to its subcategories and items
type Catalog map[Tab]*TabCatalog
