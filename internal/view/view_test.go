package view

import (
	"bytes"
	"errors"
	"testing"

	"storefront/app/internal/cart"
	"storefront/app/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleCart() cart.Snapshot {
	entries := []domain.CartEntry{
		{ID: 1, Title: "Dune", Category: domain.TabBooks, Price: price("9.99"), Quantity: 2},
		{ID: 1, Title: "Phone", Category: domain.TabElectronics, Price: price("100"), Quantity: 1},
	}
	return cart.Snapshot{Entries: entries, Totals: domain.ComputeTotals(entries)}
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★★", Stars(4.6))
	assert.Equal(t, "★★★★☆", Stars(4.4))
	assert.Equal(t, "★★★☆☆", Stars(2.5))
	assert.Equal(t, "☆☆☆☆☆", Stars(0))
	assert.Equal(t, "★★★★★", Stars(7))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPrice(decimal.Zero))
	assert.Equal(t, "$19.98", FormatPrice(price("19.98")))
	assert.Equal(t, "$5.50", FormatPrice(price("5.5")))
}

func TestBuildCardDetailsPerTab(t *testing.T) {
	bookCard := BuildCard(&domain.Item{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965}, domain.TabBooks)
	assert.Equal(t, []string{"Frank Herbert", "1965"}, bookCard.Details)

	shirt := BuildCard(&domain.Item{ID: 2, Size: []string{"M", "L"}}, domain.TabClothing)
	assert.Equal(t, []string{"Sizes: M, L"}, shirt.Details)

	lamp := BuildCard(&domain.Item{ID: 3, Dimensions: "20x20x40 cm"}, domain.TabHome)
	assert.Equal(t, []string{"20x20x40 cm"}, lamp.Details)

	bareShirt := BuildCard(&domain.Item{ID: 4}, domain.TabClothing)
	assert.Empty(t, bareShirt.Details)
}

func TestBuildModal(t *testing.T) {
	item := &domain.Item{
		ID:          9,
		Title:       "Sofa",
		Category:    "furniture",
		Price:       price("399"),
		Description: "Three seats",
		Dimensions:  "200x90x80 cm",
		Rating:      domain.Rating{Rate: 3.5, Count: 41},
	}

	modal := BuildModal(item, domain.TabHome)

	assert.Equal(t, "$399.00", modal.Price)
	assert.Equal(t, "★★★★☆", modal.Stars)
	assert.Equal(t, 41, modal.Reviews)
	assert.Equal(t, []Detail{{Label: "Dimensions", Value: "200x90x80 cm"}}, modal.Details)
}

func TestBuildCart(t *testing.T) {
	panel := BuildCart(sampleCart())

	assert.False(t, panel.Empty)
	assert.Equal(t, 3, panel.Count)
	assert.Equal(t, "$119.98", panel.Total)
	require.Len(t, panel.Lines, 2)
	assert.Equal(t, "$19.98", panel.Lines[0].Subtotal)

	empty := BuildCart(cart.Snapshot{Totals: domain.ComputeTotals(nil)})
	assert.True(t, empty.Empty)
	assert.Equal(t, "$0.00", empty.Total)
}

func TestBuildPage(t *testing.T) {
	page := Build(State{
		Tab:           domain.TabBooks,
		Subcategory:   "fiction",
		Subcategories: []string{"fiction", "history"},
		Items:         []*domain.Item{{ID: 1, Title: "Dune", Category: "fiction"}},
		Cart:          sampleCart(),
	})

	assert.Equal(t, domain.TabBooks, page.ActiveTab)
	assert.Equal(t, 3, page.Badge)
	require.Len(t, page.Tabs, 4)
	assert.True(t, page.Tabs[1].Active)
	require.Len(t, page.Subcategories, 3)
	assert.Equal(t, "All", page.Subcategories[0].Label)
	assert.False(t, page.Subcategories[0].Active)
	assert.True(t, page.Subcategories[1].Active)
	assert.Len(t, page.Products, 1)
	assert.False(t, page.NoResults)
	assert.Nil(t, page.Modal)
}

func TestBuildPageNoResultsAndLoadError(t *testing.T) {
	page := Build(State{Tab: domain.TabHome, Cart: cart.Snapshot{Totals: domain.ComputeTotals(nil)}})
	assert.True(t, page.NoResults)
	assert.False(t, page.LoadError)

	failed := Build(State{Tab: domain.TabHome, LoadError: errors.New("boom")})
	assert.True(t, failed.LoadError)
	assert.Empty(t, failed.Products)
}

func render(t *testing.T, page Page) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, page))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRenderHTMLProductsAndCart(t *testing.T) {
	item := &domain.Item{ID: 1, Title: "Dune", Category: "fiction", Price: price("9.99"), Rating: domain.Rating{Rate: 5, Count: 2}}
	page := Build(State{
		Tab:      domain.TabBooks,
		Items:    []*domain.Item{item},
		Cart:     sampleCart(),
		OpenItem: item,
		OpenTab:  domain.TabBooks,
		Notice:   &Notice{Kind: NoticeInfo, Message: "Dune added to cart"},
	})

	doc := render(t, page)

	assert.Equal(t, 1, doc.Find(".product-card").Length())
	assert.Equal(t, "Dune", doc.Find(".product-card .product-title").Text())
	assert.Equal(t, "3", doc.Find(".cart-count").Text())
	assert.Equal(t, "$119.98", doc.Find("#cartTotal").Text())
	assert.Equal(t, 2, doc.Find(".cart-item").Length())
	category, _ := doc.Find(".cart-item").Eq(1).Attr("data-category")
	assert.Equal(t, "electronics", category)
	assert.Equal(t, "★★★★★", doc.Find(".modal .stars").Text())
	assert.Equal(t, "Dune added to cart", doc.Find(".notification").Text())
	assert.Equal(t, "books", doc.Find(".tab-btn.active").AttrOr("data-tab", ""))
}

func TestRenderHTMLEmptyStates(t *testing.T) {
	doc := render(t, Build(State{Tab: domain.TabHome, Cart: cart.Snapshot{Totals: domain.ComputeTotals(nil)}}))
	assert.Equal(t, 1, doc.Find(".no-results").Length())
	assert.Equal(t, 1, doc.Find(".empty-cart").Length())
	assert.Equal(t, "$0.00", doc.Find("#cartTotal").Text())

	failed := render(t, Build(State{Tab: domain.TabHome, LoadError: errors.New("boom")}))
	assert.Equal(t, 1, failed.Find(".error-message").Length())
	assert.Equal(t, 0, failed.Find(".no-results").Length())
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	page := Build(State{
		Tab:   domain.TabElectronics,
		Items: []*domain.Item{{ID: 1, Title: "<script>alert(1)</script>"}},
	})

	doc := render(t, page)

	assert.Equal(t, 0, doc.Find(".product-card script").Length())
	assert.Equal(t, "<script>alert(1)</script>", doc.Find(".product-title").Text())
}
