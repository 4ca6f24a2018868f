// backend-go/internal/wrapped/assembler.go
package wrapped

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// Engine turns parsed export files into the per-year statistics bundle. It is
// synchronous and pure apart from the injected logger: every call works on
// its own copies and returns a fresh bundle the caller owns. Malformed data
// never surfaces as an error; bad rows are dropped and empty years produce a
// zeroed stats object.
type Engine struct {
	log    zerolog.Logger
	limits config.Limits
}

func NewEngine(log zerolog.Logger, limits config.Limits) *Engine {
	if limits.TopItems <= 0 {
		limits = config.DefaultLimits
	}
	return &Engine{log: log, limits: limits}
}

// ComputeFromFiles is the primary entry point: normalize every file by
// schema, dedupe across the whole multi-year set, then compute the target
// year. Dedup runs before year filtering because the same order line can
// appear in two export files covering different ranges. AllOrders/AllRefunds
// in the result span every year so a later year switch works without the raw
// files.
func (e *Engine) ComputeFromFiles(files []*domain.ParsedFile, targetYear int) *domain.StatsResult {
	allOrders, allRefunds := NormalizeFiles(files)
	allOrders = DedupeOrders(allOrders)

	e.log.Info().
		Int("files", len(files)).
		Int("orders", len(allOrders)).
		Int("refunds", len(allRefunds)).
		Int("year", targetYear).
		Msg("computing wrapped stats")

	stats, processed := e.ComputeForYear(allOrders, allRefunds, targetYear)

	return &domain.StatsResult{
		Stats:         stats,
		ProcessedData: processed,
		AllOrders:     allOrders,
		AllRefunds:    allRefunds,
	}
}

// ComputeForYear recomputes stats for a new target year from already
// normalized, already deduplicated data. This is the year-switch path used
// when the raw files are gone (e.g. the caller restored a persisted bundle);
// it must reproduce the from-scratch numbers exactly.
func (e *Engine) ComputeForYear(allOrders []domain.Order, allRefunds []domain.Refund, targetYear int) (*domain.WrappedStats, *domain.ProcessedData) {
	yearOrders := filterOrdersToYear(allOrders, targetYear)
	yearRefunds := filterRefundsToYear(allRefunds, targetYear)

	stats := e.buildStats(yearOrders, yearRefunds)

	primaryOrders := yearOrders
	if stats.HasMixedCurrencies {
		primaryOrders = filterCurrency(yearOrders, stats.PrimaryCurrency)
	}

	processed := &domain.ProcessedData{
		Orders:          sortOrdersByDateDesc(yearOrders),
		Refunds:         sortRefundsByDateDesc(yearRefunds),
		EnrichedRefunds: enrichRefunds(yearRefunds, yearOrders),
		MonthlyData:     BuildMonthlyData(yearOrders, primaryOrders),
	}

	return stats, processed
}

func filterOrdersToYear(orders []domain.Order, year int) []domain.Order {
	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.OrderDate.Year() == year {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func filterRefundsToYear(refunds []domain.Refund, year int) []domain.Refund {
	filtered := make([]domain.Refund, 0, len(refunds))
	for _, refund := range refunds {
		if refund.RefundDate.Year() == year {
			filtered = append(filtered, refund)
		}
	}
	return filtered
}

// buildStats computes the full WrappedStats for one year-filtered set.
// Monetary figures (gross spend, monthly spend, peak month, digital spend,
// book spend, refund totals) run over the primary-currency subset whenever
// currencies are mixed; counts always run over everything.
func (e *Engine) buildStats(yearOrders []domain.Order, yearRefunds []domain.Refund) *domain.WrappedStats {
	breakdown := BreakdownCurrencies(yearOrders)
	primary := config.DefaultCurrency
	if len(breakdown) > 0 {
		primary = breakdown[0].Currency
	}
	mixed := len(breakdown) > 1
	if mixed {
		e.log.Debug().
			Str("primary", primary).
			Int("currencies", len(breakdown)).
			Msg("mixed currencies detected, monetary totals restricted to primary")
	}

	primaryOrders := yearOrders
	primaryRefunds := yearRefunds
	if mixed {
		primaryOrders = filterCurrency(yearOrders, primary)
		primaryRefunds = filterRefundCurrency(yearRefunds, primary)
	}

	totalGrossSpend := 0.0
	primaryItems := 0
	for _, order := range primaryOrders {
		totalGrossSpend += order.TotalOwed
		primaryItems += order.Quantity
	}

	totalRefunds := 0.0
	for _, refund := range primaryRefunds {
		totalRefunds += refund.AmountRefunded
	}
	netSpend := totalGrossSpend - totalRefunds

	totalItems := 0
	for _, order := range yearOrders {
		totalItems += order.Quantity
	}

	var retail, digital []domain.Order
	for _, order := range yearOrders {
		if order.IsDigital {
			digital = append(digital, order)
		} else {
			retail = append(retail, order)
		}
	}

	totalOrders := distinctOrderIDs(yearOrders)

	averageItemCost := 0.0
	if primaryItems > 0 {
		averageItemCost = totalGrossSpend / float64(primaryItems)
	}

	spendByMonth := monthlySpendAmounts(primaryOrders)
	dayCounts := dailyOrderCounts(yearOrders)

	// Digital + book monetary figures respect the same currency guardrail.
	primaryDigital := digital
	if mixed {
		primaryDigital = filterCurrency(digital, primary)
	}
	digitalSpend := 0.0
	for _, order := range primaryDigital {
		digitalSpend += order.TotalOwed
	}
	digitalItemCount := 0
	for _, order := range digital {
		digitalItemCount += order.Quantity
	}

	var books []domain.Order
	for _, order := range yearOrders {
		if IsLikelyBook(order.ProductName, order.Publisher) {
			books = append(books, order)
		}
	}

	primaryBooks := books
	if mixed {
		primaryBooks = filterCurrency(books, primary)
	}
	bookSpend := 0.0
	for _, order := range primaryBooks {
		bookSpend += order.TotalOwed
	}

	bookCount, kindleBookCount, physicalBookCount := 0, 0, 0
	for _, book := range books {
		bookCount += book.Quantity
		if book.IsDigital {
			kindleBookCount += book.Quantity
		} else {
			physicalBookCount += book.Quantity
		}
	}

	returnCount := len(yearRefunds)
	returnRate := 0.0
	if totalOrders > 0 {
		returnRate = float64(returnCount) / float64(totalOrders) * 100
	}

	return &domain.WrappedStats{
		TotalGrossSpend: totalGrossSpend,
		TotalRefunds:    totalRefunds,
		NetSpend:        netSpend,
		MonthlyAverage:  netSpend / 12,
		AverageItemCost: averageItemCost,

		TotalOrders:          totalOrders,
		RetailOrders:         distinctOrderIDs(retail),
		DigitalOrders:        distinctOrderIDs(digital),
		TotalItems:           totalItems,
		AverageItemsPerMonth: float64(totalItems) / 12,
		OrdersPerDay:         float64(totalOrders) / 365,

		PeakMonth:       peakMonthOf(spendByMonth, yearOrders),
		FavoriteDay:     favoriteDayOf(dayCounts),
		MonthlySpending: buildMonthlySpending(spendByMonth),
		DailyOrders:     buildDailyOrders(dayCounts),

		TopItems:          topItemsByQuantity(yearOrders, e.limits.TopItems),
		TopExpensiveItems: topByUnitPrice(yearOrders, e.limits.TopExpensive),

		DigitalSpend:     digitalSpend,
		DigitalItemCount: digitalItemCount,
		TopPublisher:     topPublisherByQuantity(digital),

		BookCount:         bookCount,
		BookSpend:         bookSpend,
		KindleBookCount:   kindleBookCount,
		PhysicalBookCount: physicalBookCount,
		TopBookPublisher:  topPublisherByQuantity(books),
		TopBooks:          topByUnitPrice(books, e.limits.TopBooks),

		ReturnCount:       returnCount,
		TotalRefundAmount: totalRefunds,
		ReturnRate:        returnRate,

		PrimaryCurrency:    primary,
		HasMixedCurrencies: mixed,
		CurrencyBreakdown:  breakdown,
	}
}

func distinctOrderIDs(orders []domain.Order) int {
	ids := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		ids[order.OrderID] = struct{}{}
	}
	return len(ids)
}

// enrichRefunds joins each refund to the first order seen with its order ID.
// Multi-line orders resolve to their first line; refunds with no matching
// order keep a nil original.
func enrichRefunds(refunds []domain.Refund, orders []domain.Order) []domain.EnrichedRefund {
	byID := make(map[string]*domain.Order, len(orders))
	for i := range orders {
		if _, ok := byID[orders[i].OrderID]; !ok {
			byID[orders[i].OrderID] = &orders[i]
		}
	}

	enriched := make([]domain.EnrichedRefund, 0, len(refunds))
	for _, refund := range refunds {
		entry := domain.EnrichedRefund{Refund: refund}
		if original, ok := byID[refund.OrderID]; ok {
			orderCopy := *original
			entry.OriginalOrder = &orderCopy
			entry.ProductName = orderCopy.ProductName
		}
		enriched = append(enriched, entry)
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].RefundDate.After(enriched[j].RefundDate)
	})
	return enriched
}

// AvailableYears scans parsed files for every year any order or refund falls
// in, most recent first. Used to drive the year selector before any stats
// are computed.
func (e *Engine) AvailableYears(files []*domain.ParsedFile) []int {
	orders, refunds := NormalizeFiles(files)
	return YearsFromOrders(orders, refunds)
}

// YearsFromOrders lists the distinct years in normalized data, descending.
func YearsFromOrders(orders []domain.Order, refunds []domain.Refund) []int {
	seen := make(map[int]struct{})
	for _, order := range orders {
		seen[order.OrderDate.Year()] = struct{}{}
	}
	for _, refund := range refunds {
		seen[refund.RefundDate.Year()] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
