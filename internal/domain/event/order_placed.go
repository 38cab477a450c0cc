package event

import "github.com/shopspring/decimal"

type OrderPlaced struct {
	OrderID string          `json:"order_id"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
}

func (e *OrderPlaced) EventType() string {
	return "OrderPlaced"
}

func (e *OrderPlaced) EventValue() ([]byte, error) {
	return DefaultEventValue(e)
}
