package event

import "github.com/shopspring/decimal"

type CartUpdated struct {
	Entries int             `json:"entries"` // Distinct cart lines
	Count   int             `json:"count"`   // Sum of quantities
	Total   decimal.Decimal `json:"total"`   // Sum of price x quantity
}

func (e *CartUpdated) EventType() string {
	return "CartUpdated"
}

func (e *CartUpdated) EventValue() ([]byte, error) {
	return DefaultEventValue(e)
}
