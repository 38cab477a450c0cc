package domain

import "errors"

var (
	ErrUnknownTab         = errors.New("unknown tab")
	ErrItemNotFound       = errors.New("item not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCatalogUnavailable = errors.New("catalog is not loaded")
)
