package view

import (
	"fmt"
	"html/template"
	"io"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Storefront</title></head>
<body>
<nav class="tabs">
{{- range .Tabs}}
  <button class="tab-btn{{if .Active}} active{{end}}" data-tab="{{.Tab}}">{{.Label}}</button>
{{- end}}
  <button class="cart-btn">Cart <span class="cart-count">{{.Badge}}</span></button>
</nav>
<form class="search" method="get">
  <input id="searchInput" name="q" value="{{.Query}}">
</form>
<div id="subcategories">
{{- range .Subcategories}}
  <button class="subcategory-btn{{if .Active}} active{{end}}" data-subcategory="{{.Name}}">{{.Label}}</button>
{{- end}}
</div>
<section class="products-container" id="{{.ActiveTab}}Container">
{{- if .LoadError}}
  <div class="error-message">
    <h3>Error loading data</h3>
    <p>Please try refreshing the page later</p>
  </div>
{{- else if .NoResults}}
  <div class="no-results">
    <h3>No items found</h3>
    <p>Try changing your search query</p>
  </div>
{{- else}}
{{- range .Products}}
  <div class="product-card" data-id="{{.ID}}" data-category="{{.Tab}}">
    <img src="{{.Image}}" alt="{{.Title}}" class="product-image" loading="lazy">
    <div class="product-info">
      <span class="product-category">{{.Category}}</span>
      <h3 class="product-title">{{.Title}}</h3>
      <p class="product-price">{{.Price}}</p>
{{- range .Details}}
      <p class="product-detail">{{.}}</p>
{{- end}}
    </div>
    <button class="quick-add" data-id="{{.ID}}">Add to Cart</button>
  </div>
{{- end}}
{{- end}}
</section>
{{- with .Modal}}
<div id="modal" class="modal active">
  <div id="modalContent">
    <img src="{{.Image}}" alt="{{.Title}}" class="modal-image">
    <h2 class="modal-title">{{.Title}}</h2>
    <span class="modal-category">{{.Category}}</span>
    <p class="modal-price">{{.Price}}</p>
    <div class="modal-rating"><span class="stars">{{.Stars}}</span> <span>{{.Reviews}} reviews</span></div>
    <p class="modal-description">{{.Description}}</p>
{{- if .Details}}
    <div class="modal-details">
{{- range .Details}}
      <p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{- end}}
    </div>
{{- end}}
    <button class="add-to-cart" data-id="{{.ID}}">Add to Cart</button>
    <button class="delete-from-site" data-id="{{.ID}}">Remove from site</button>
  </div>
</div>
{{- end}}
<aside id="cartSidebar">
  <div id="cartItems">
{{- if .Cart.Empty}}
    <div class="empty-cart"><p>Your cart is empty</p></div>
{{- else}}
{{- range .Cart.Lines}}
    <div class="cart-item" data-id="{{.ID}}" data-category="{{.Tab}}">
      <img src="{{.Image}}" alt="{{.Title}}" class="cart-item-img">
      <div class="cart-item-details">
        <h4 class="cart-item-title">{{.Title}}</h4>
        <p class="cart-item-price">{{.Price}}</p>
        <div class="quantity-controls">
          <button class="decrease-qty" data-id="{{.ID}}" data-category="{{.Tab}}">-</button>
          <span class="qty">{{.Quantity}}</span>
          <button class="increase-qty" data-id="{{.ID}}" data-category="{{.Tab}}">+</button>
        </div>
        <button class="remove-item" data-id="{{.ID}}" data-category="{{.Tab}}">Remove</button>
      </div>
    </div>
{{- end}}
{{- end}}
  </div>
  <p>Total: <span id="cartTotal">{{.Cart.Total}}</span></p>
  <button class="checkout-btn">Checkout</button>
</aside>
{{- with .Notice}}
<div class="notification show {{.Kind}}">{{.Message}}</div>
{{- end}}
</body>
</html>
`

var pageHTML = template.Must(template.New("page").Parse(pageTemplate))

// RenderHTML writes page as a complete HTML document
func RenderHTML(w io.Writer, page Page) error {
	if err := pageHTML.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
