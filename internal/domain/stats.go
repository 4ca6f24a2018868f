// backend-go/internal/domain/stats.go
package domain

// PeakMonth is the month with the highest primary-currency spend.
type PeakMonth struct {
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
	OrderCount int     `json:"order_count"`
}

// FavoriteDay is the weekday with the most order lines.
type FavoriteDay struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// NamedCount pairs a product name with an aggregated quantity.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NamedPrice pairs a product name with a unit price.
type NamedPrice struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MonthAmount is one bar of the monthly spending series.
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// DayCount is one bar of the weekday order histogram.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// WrappedStats is the flat, fully derived snapshot of headline statistics for
// one target year. Pure output: built once, never mutated. Every numeric
// field is zero for an empty year, never NaN or Inf.
type WrappedStats struct {
	// Spending
	TotalGrossSpend float64 `json:"total_gross_spend"`
	TotalRefunds    float64 `json:"total_refunds"`
	NetSpend        float64 `json:"net_spend"`
	MonthlyAverage  float64 `json:"monthly_average"`
	AverageItemCost float64 `json:"average_item_cost"`

	// Orders
	TotalOrders          int     `json:"total_orders"`
	RetailOrders         int     `json:"retail_orders"`
	DigitalOrders        int     `json:"digital_orders"`
	TotalItems           int     `json:"total_items"`
	AverageItemsPerMonth float64 `json:"average_items_per_month"`
	OrdersPerDay         float64 `json:"orders_per_day"`

	// Time based
	PeakMonth       PeakMonth     `json:"peak_month"`
	FavoriteDay     FavoriteDay   `json:"favorite_day"`
	MonthlySpending []MonthAmount `json:"monthly_spending"`
	DailyOrders     []DayCount    `json:"daily_orders"`

	// Products
	TopItems          []NamedCount `json:"top_items"`
	TopExpensiveItems []NamedPrice `json:"top_expensive_items"`

	// Digital
	DigitalSpend     float64 `json:"digital_spend"`
	DigitalItemCount int     `json:"digital_item_count"`
	TopPublisher     string  `json:"top_publisher,omitempty"`

	// Books (physical + digital)
	BookCount         int          `json:"book_count"`
	BookSpend         float64      `json:"book_spend"`
	KindleBookCount   int          `json:"kindle_book_count"`
	PhysicalBookCount int          `json:"physical_book_count"`
	TopBookPublisher  string       `json:"top_book_publisher,omitempty"`
	TopBooks          []NamedPrice `json:"top_books"`

	// Returns
	ReturnCount       int     `json:"return_count"`
	TotalRefundAmount float64 `json:"total_refund_amount"`
	ReturnRate        float64 `json:"return_rate"`

	// Currency
	PrimaryCurrency   string           `json:"primary_currency"`
	HasMixedCurrencies bool            `json:"has_mixed_currencies"`
	CurrencyBreakdown []CurrencyAmount `json:"currency_breakdown"`
}

// ProcessedData is the year-filtered transaction detail preserved alongside
// the stats for exploration views.
type ProcessedData struct {
	Orders          []Order          `json:"orders"`
	Refunds         []Refund         `json:"refunds"`
	EnrichedRefunds []EnrichedRefund `json:"enriched_refunds"`
	MonthlyData     []MonthlyData    `json:"monthly_data"`
}

// StatsResult is the full bundle returned by one computation pass. AllOrders
// and AllRefunds span every year in the uploaded files so that a later year
// switch never needs the raw CSVs again.
type StatsResult struct {
	Stats         *WrappedStats  `json:"stats"`
	ProcessedData *ProcessedData `json:"processed_data"`
	AllOrders     []Order        `json:"all_orders"`
	AllRefunds    []Refund       `json:"all_refunds"`
}
