package event

import "storefront/app/internal/domain"

type CatalogItemDeleted struct {
	ItemID int        `json:"item_id"`
	Tab    domain.Tab `json:"tab"`
}

func (e *CatalogItemDeleted) EventType() string {
	return "CatalogItemDeleted"
}

func (e *CatalogItemDeleted) EventValue() ([]byte, error) {
	return DefaultEventValue(e)
}
