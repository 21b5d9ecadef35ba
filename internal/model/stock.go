package model

type StockLevel string

const (
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockHigh   StockLevel = "high"
)

// ClassifyStock buckets a quantity on hand: above 100 is high, 51..100 is
// medium, anything else is low.
func ClassifyStock(quantity int) StockLevel {
	switch {
	case quantity > 100:
		return StockHigh
	case quantity > 50:
		return StockMedium
	default:
		return StockLow
	}
}
