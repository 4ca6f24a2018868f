// backend-go/internal/domain/models.go
package domain

import "time"

// FileType identifies which export schema a CSV file belongs to.
type FileType string

const (
	FileTypeRetailOrders   FileType = "retail_orders"
	FileTypeDigitalItems   FileType = "digital_items"
	FileTypeRefundPayments FileType = "refund_payments"
	FileTypeUnknown        FileType = "unknown"
)

// ParsedFile is one tokenized CSV export: rows keyed by the original header
// strings. Header spelling matters downstream; detection is case-insensitive
// but field extraction is exact-case per schema.
type ParsedFile struct {
	Type     FileType            `json:"type"`
	FileName string              `json:"file_name"`
	Rows     []map[string]string `json:"rows"`
	RowCount int                 `json:"row_count"`
}

// Order is one product line within one purchase. Multiple Orders may share an
// OrderID. OrderDate is always a resolved date: rows whose date cannot be
// parsed never become Orders.
type Order struct {
	OrderID     string    `json:"order_id" db:"order_id"`
	OrderDate   time.Time `json:"order_date" db:"order_date"`
	TotalOwed   float64   `json:"total_owed" db:"total_owed"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	ProductName string    `json:"product_name" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	ASIN        string    `json:"asin" db:"asin"`
	Currency    string    `json:"currency" db:"currency"`
	IsDigital   bool      `json:"is_digital" db:"is_digital"`
	Publisher   string    `json:"publisher,omitempty" db:"publisher"`
}

// Refund references an Order by OrderID but does not own it; the join happens
// at enrichment time.
type Refund struct {
	OrderID        string    `json:"order_id" db:"order_id"`
	AmountRefunded float64   `json:"amount_refunded" db:"amount_refunded"`
	RefundDate     time.Time `json:"refund_date" db:"refund_date"`
	Currency       string    `json:"currency" db:"currency"`
}

// EnrichedRefund is a Refund joined against the first Order seen with the
// same OrderID. OriginalOrder is nil when no order matched.
type EnrichedRefund struct {
	Refund
	OriginalOrder *Order `json:"original_order,omitempty"`
	ProductName   string `json:"product_name,omitempty"`
}

// MonthlyData is the per-calendar-month rollup for a target year. Orders
// holds the month's detail lines sorted by date descending; the persistence
// layer may empty it under a size budget, so consumers must not rely on it.
type MonthlyData struct {
	Month      string  `json:"month"`
	MonthIndex int     `json:"month_index"`
	TotalSpend float64 `json:"total_spend"`
	OrderCount int     `json:"order_count"`
	Orders     []Order `json:"orders"`
}

// YearlyData is the per-year rollup across the full order set.
type YearlyData struct {
	Year            int     `json:"year"`
	TotalSpend      float64 `json:"total_spend"`
	OrderCount      int     `json:"order_count"`
	Orders          []Order `json:"orders"`
	PrimaryCurrency string  `json:"primary_currency,omitempty"`
}

// CurrencyAmount is one entry in a currency breakdown, ordered by line count
// descending; the first entry is the primary currency.
type CurrencyAmount struct {
	Currency   string  `json:"currency"`
	Amount     float64 `json:"amount"`
	OrderCount int     `json:"order_count"`
}
