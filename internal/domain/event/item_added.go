package event

import "storefront/app/internal/domain"

type ItemAdded struct {
	ItemID   int        `json:"item_id"`
	Tab      domain.Tab `json:"tab"`
	Title    string     `json:"title"`
	Quantity int        `json:"quantity"` // Quantity of the line after the add
}

func (e *ItemAdded) EventType() string {
	return "ItemAdded"
}

func (e *ItemAdded) EventValue() ([]byte, error) {
	return DefaultEventValue(e)
}
