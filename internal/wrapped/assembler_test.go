package wrapped

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

func testEngine() *Engine {
	return NewEngine(zerolog.Nop(), config.DefaultLimits)
}

func retailFile(rows ...map[string]string) *domain.ParsedFile {
	return &domain.ParsedFile{Type: domain.FileTypeRetailOrders, FileName: "Retail.OrderHistory.1.csv", Rows: rows, RowCount: len(rows)}
}

func refundFile(rows ...map[string]string) *domain.ParsedFile {
	return &domain.ParsedFile{Type: domain.FileTypeRefundPayments, FileName: "Retail.OrdersReturned.Payments.1.csv", Rows: rows, RowCount: len(rows)}
}

func TestComputeFromFilesSingleOrder(t *testing.T) {
	files := []*domain.ParsedFile{retailFile(retailRow(nil))}

	result := testEngine().ComputeFromFiles(files, 2025)
	require.NotNil(t, result)

	stats := result.Stats
	assert.InDelta(t, 29.99, stats.TotalGrossSpend, 1e-9)
	assert.InDelta(t, 29.99, stats.NetSpend, 1e-9)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalItems)
	assert.Equal(t, "March", stats.PeakMonth.Month)
	assert.InDelta(t, 29.99, stats.PeakMonth.Amount, 1e-9)
	assert.Equal(t, "Monday", stats.FavoriteDay.Day) // 2025-03-10 is a Monday
	assert.Equal(t, "USD", stats.PrimaryCurrency)
	assert.False(t, stats.HasMixedCurrencies)

	require.Len(t, result.ProcessedData.MonthlyData, 12)
	assert.InDelta(t, 29.99, result.ProcessedData.MonthlyData[2].TotalSpend, 1e-9)
}

func TestComputeFromFilesRefundNetsOut(t *testing.T) {
	files := []*domain.ParsedFile{
		retailFile(retailRow(nil)),
		refundFile(map[string]string{
			"OrderID":              "A1",
			"AmountRefunded":       "$29.99",
			"RefundCompletionDate": "2025-03-15",
			"Currency":             "USD",
		}),
	}

	result := testEngine().ComputeFromFiles(files, 2025)
	stats := result.Stats

	assert.InDelta(t, 29.99, stats.TotalGrossSpend, 1e-9)
	assert.InDelta(t, 29.99, stats.TotalRefunds, 1e-9)
	assert.InDelta(t, 0, stats.NetSpend, 1e-9)
	assert.Equal(t, 1, stats.ReturnCount)
	assert.InDelta(t, 100, stats.ReturnRate, 1e-9)

	enriched := result.ProcessedData.EnrichedRefunds
	require.Len(t, enriched, 1)
	require.NotNil(t, enriched[0].OriginalOrder)
	assert.Equal(t, "Widget", enriched[0].ProductName)
}

func TestComputeFromFilesDedupesAcrossFiles(t *testing.T) {
	// The same order line exported twice in overlapping files counts once.
	files := []*domain.ParsedFile{
		retailFile(retailRow(nil)),
		retailFile(retailRow(nil)),
	}

	result := testEngine().ComputeFromFiles(files, 2025)
	assert.Len(t, result.AllOrders, 1)
	assert.InDelta(t, 29.99, result.Stats.TotalGrossSpend, 1e-9)
	assert.Equal(t, 1, result.Stats.TotalOrders)
}

func TestComputeFromFilesMixedCurrencies(t *testing.T) {
	files := []*domain.ParsedFile{retailFile(
		retailRow(map[string]string{"Order ID": "A1", "ASIN": "B1", "Total Owed": "$10.00"}),
		retailRow(map[string]string{"Order ID": "A2", "ASIN": "B2", "Total Owed": "$20.00"}),
		retailRow(map[string]string{"Order ID": "A3", "ASIN": "B3", "Total Owed": "$30.00"}),
		retailRow(map[string]string{"Order ID": "A4", "ASIN": "B4", "Total Owed": "40.00", "Currency": "EUR"}),
	)}

	stats := testEngine().ComputeFromFiles(files, 2025).Stats

	assert.True(t, stats.HasMixedCurrencies)
	assert.Equal(t, "USD", stats.PrimaryCurrency)
	// Monetary totals cover only the primary currency; counts cover everything.
	assert.InDelta(t, 60, stats.TotalGrossSpend, 1e-9)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 4, stats.TotalItems)

	require.Len(t, stats.CurrencyBreakdown, 2)
	assert.Equal(t, "USD", stats.CurrencyBreakdown[0].Currency)
	assert.Equal(t, 3, stats.CurrencyBreakdown[0].OrderCount)
	assert.Equal(t, "EUR", stats.CurrencyBreakdown[1].Currency)
	assert.InDelta(t, 40, stats.CurrencyBreakdown[1].Amount, 1e-9)
}

func TestComputeForYearMatchesFullPass(t *testing.T) {
	files := []*domain.ParsedFile{retailFile(
		retailRow(map[string]string{"Order ID": "A1", "Order Date": "2023-06-01", "Total Owed": "$15.00"}),
		retailRow(map[string]string{"Order ID": "A2", "Order Date": "2024-02-14", "Total Owed": "$45.50"}),
		retailRow(map[string]string{"Order ID": "A3", "Order Date": "2025-03-10", "Total Owed": "$29.99"}),
	)}

	engine := testEngine()
	full2025 := engine.ComputeFromFiles(files, 2025)

	for _, year := range []int{2023, 2024, 2025} {
		scratch := engine.ComputeFromFiles(files, year)
		switched, processed := engine.ComputeForYear(full2025.AllOrders, full2025.AllRefunds, year)

		assert.Equal(t, scratch.Stats, switched, "year %d", year)
		assert.Equal(t, scratch.ProcessedData, processed, "year %d", year)
	}
}

func TestComputeFromFilesEmptyIsZeroSafe(t *testing.T) {
	result := testEngine().ComputeFromFiles(nil, 2025)
	require.NotNil(t, result)
	stats := result.Stats

	assert.Zero(t, stats.TotalGrossSpend)
	assert.Zero(t, stats.NetSpend)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.ReturnRate)
	assert.Zero(t, stats.AverageItemCost)
	assert.Equal(t, "Monday", stats.FavoriteDay.Day)
	assert.Equal(t, "USD", stats.PrimaryCurrency)
	assert.False(t, stats.HasMixedCurrencies)
	assert.Len(t, stats.MonthlySpending, 12)
	assert.Len(t, stats.DailyOrders, 7)

	for _, v := range []float64{
		stats.TotalGrossSpend, stats.NetSpend, stats.MonthlyAverage,
		stats.AverageItemCost, stats.OrdersPerDay, stats.AverageItemsPerMonth,
		stats.ReturnRate, stats.DigitalSpend, stats.BookSpend,
	} {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestComputeFromFilesOtherYearFiltered(t *testing.T) {
	files := []*domain.ParsedFile{retailFile(
		retailRow(map[string]string{"Order ID": "A1", "Order Date": "2024-06-01"}),
	)}

	result := testEngine().ComputeFromFiles(files, 2025)
	assert.Zero(t, result.Stats.TotalOrders)
	assert.Len(t, result.AllOrders, 1) // the off-year order survives for a later switch
}

func TestComputeFromFilesBookStats(t *testing.T) {
	files := []*domain.ParsedFile{
		retailFile(
			retailRow(map[string]string{"Order ID": "A1", "ASIN": "B1", "Product Name": "Project Hail Mary: Paperback", "Total Owed": "$18.00", "Unit Price": "$18.00"}),
			retailRow(map[string]string{"Order ID": "A2", "ASIN": "B2", "Product Name": "USB Cable", "Total Owed": "$7.00", "Unit Price": "$7.00"}),
		),
		{
			Type: domain.FileTypeDigitalItems,
			Rows: []map[string]string{digitalRow(map[string]string{
				"OrderId": "D1", "ProductName": "Dune", "Publisher": "Penguin Random House", "OurPrice": "$9.99",
			})},
		},
	}

	stats := testEngine().ComputeFromFiles(files, 2025).Stats

	assert.Equal(t, 2, stats.BookCount)
	assert.Equal(t, 1, stats.KindleBookCount)
	assert.Equal(t, 1, stats.PhysicalBookCount)
	assert.InDelta(t, 27.99, stats.BookSpend, 1e-9)
	assert.Equal(t, "Penguin Random House", stats.TopBookPublisher)

	assert.InDelta(t, 9.99, stats.DigitalSpend, 1e-9)
	assert.Equal(t, 1, stats.DigitalItemCount)
	assert.Equal(t, 1, stats.DigitalOrders)
	assert.Equal(t, 2, stats.RetailOrders)
}

func TestAvailableYears(t *testing.T) {
	files := []*domain.ParsedFile{
		retailFile(
			retailRow(map[string]string{"Order ID": "A1", "Order Date": "2023-06-01"}),
			retailRow(map[string]string{"Order ID": "A2", "Order Date": "2025-01-01"}),
		),
		refundFile(map[string]string{
			"OrderID":              "A0",
			"AmountRefunded":       "$3.00",
			"RefundCompletionDate": "2022-12-30",
		}),
	}

	years := testEngine().AvailableYears(files)
	assert.Equal(t, []int{2025, 2023, 2022}, years)
}

func TestNewEngineRejectsZeroLimits(t *testing.T) {
	engine := NewEngine(zerolog.Nop(), config.Limits{})
	assert.Equal(t, config.DefaultLimits, engine.limits)
}
