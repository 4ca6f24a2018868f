// backend-go/internal/wrapped/aggregate.go
package wrapped

import (
	"sort"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// sortOrdersByDateDesc returns a copy sorted newest first. Detail lists are
// always presented in that order; the input is never mutated.
func sortOrdersByDateDesc(orders []domain.Order) []domain.Order {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderDate.After(sorted[j].OrderDate)
	})
	return sorted
}

func sortRefundsByDateDesc(refunds []domain.Refund) []domain.Refund {
	sorted := make([]domain.Refund, len(refunds))
	copy(sorted, refunds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RefundDate.After(sorted[j].RefundDate)
	})
	return sorted
}

// monthlySpendAmounts sums spend per calendar month. Callers pass the
// primary-currency subset; the month array keeps the tally deterministic.
func monthlySpendAmounts(orders []domain.Order) [12]float64 {
	var amounts [12]float64
	for _, order := range orders {
		amounts[int(order.OrderDate.Month())-1] += order.TotalOwed
	}
	return amounts
}

func buildMonthlySpending(amounts [12]float64) []domain.MonthAmount {
	series := make([]domain.MonthAmount, 12)
	for i, name := range config.MonthsFull {
		series[i] = domain.MonthAmount{Month: name, Amount: amounts[i]}
	}
	return series
}

// peakMonthOf finds the month with the highest spend. Iteration runs in month
// order with a strictly-greater comparison, so a tie keeps the earliest month
// (stable first-occurrence rule). The order count for the peak month counts
// every order line, not just primary-currency ones.
func peakMonthOf(amounts [12]float64, allOrders []domain.Order) domain.PeakMonth {
	peak := domain.PeakMonth{Month: config.MonthsFull[0]}
	for i, amount := range amounts {
		if amount > peak.Amount {
			count := 0
			for _, order := range allOrders {
				if int(order.OrderDate.Month())-1 == i {
					count++
				}
			}
			peak = domain.PeakMonth{Month: config.MonthsFull[i], Amount: amount, OrderCount: count}
		}
	}
	return peak
}

// dailyOrderCounts tallies order lines per weekday (0 = Sunday). Counts are
// not monetary, so no currency filtering applies.
func dailyOrderCounts(orders []domain.Order) [7]int {
	var counts [7]int
	for _, order := range orders {
		counts[int(order.OrderDate.Weekday())]++
	}
	return counts
}

func buildDailyOrders(counts [7]int) []domain.DayCount {
	series := make([]domain.DayCount, 7)
	for i, name := range config.DaysFull {
		series[i] = domain.DayCount{Day: name, Count: counts[i]}
	}
	return series
}

// favoriteDayOf picks the busiest weekday, earliest index winning ties.
func favoriteDayOf(counts [7]int) domain.FavoriteDay {
	favorite := domain.FavoriteDay{Day: config.DaysFull[1]} // Monday default for empty sets
	for i, count := range counts {
		if count > favorite.Count {
			favorite = domain.FavoriteDay{Day: config.DaysFull[i], Count: count}
		}
	}
	return favorite
}

// topItemsByQuantity groups by exact product name, sums quantities and keeps
// the top entries. Stable sort on a first-seen-ordered tally keeps ties
// deterministic.
func topItemsByQuantity(orders []domain.Order, limit int) []domain.NamedCount {
	index := make(map[string]int)
	var tally []domain.NamedCount

	for _, order := range orders {
		i, ok := index[order.ProductName]
		if !ok {
			i = len(tally)
			index[order.ProductName] = i
			tally = append(tally, domain.NamedCount{Name: order.ProductName})
		}
		tally[i].Count += order.Quantity
	}

	sort.SliceStable(tally, func(i, j int) bool {
		return tally[i].Count > tally[j].Count
	})

	if len(tally) > limit {
		tally = tally[:limit]
	}
	return tally
}

// topByUnitPrice keeps the most expensive order lines. No grouping by name: a
// repeated expensive item appears once per line.
func topByUnitPrice(orders []domain.Order, limit int) []domain.NamedPrice {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnitPrice > sorted[j].UnitPrice
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	top := make([]domain.NamedPrice, len(sorted))
	for i, order := range sorted {
		top[i] = domain.NamedPrice{Name: order.ProductName, Price: order.UnitPrice}
	}
	return top
}

// topPublisherByQuantity finds the publisher with the highest summed
// quantity, first-seen winning ties. Empty when no order carries a publisher.
func topPublisherByQuantity(orders []domain.Order) string {
	index := make(map[string]int)
	var tally []domain.NamedCount

	for _, order := range orders {
		if order.Publisher == "" {
			continue
		}
		i, ok := index[order.Publisher]
		if !ok {
			i = len(tally)
			index[order.Publisher] = i
			tally = append(tally, domain.NamedCount{Name: order.Publisher})
		}
		tally[i].Count += order.Quantity
	}

	top := ""
	max := 0
	for _, entry := range tally {
		if entry.Count > max {
			top = entry.Name
			max = entry.Count
		}
	}
	return top
}

// BuildMonthlyData produces the twelve per-month rollups for a target year's
// order set. Spend is primary-currency only when currencies are mixed; counts
// and detail lists cover every order line.
func BuildMonthlyData(yearOrders []domain.Order, primaryOrders []domain.Order) []domain.MonthlyData {
	spend := monthlySpendAmounts(primaryOrders)

	months := make([]domain.MonthlyData, 12)
	for i, name := range config.MonthsFull {
		var monthOrders []domain.Order
		for _, order := range yearOrders {
			if int(order.OrderDate.Month())-1 == i {
				monthOrders = append(monthOrders, order)
			}
		}

		months[i] = domain.MonthlyData{
			Month:      name,
			MonthIndex: i,
			TotalSpend: spend[i],
			OrderCount: len(monthOrders),
			Orders:     sortOrdersByDateDesc(monthOrders),
		}
	}
	return months
}

// YearlyDataFromOrders rolls the full (already normalized) order set up into
// one entry per distinct year, ascending. Each year resolves its own primary
// currency; spend is primary-only for that year, the line count is not.
func YearlyDataFromOrders(allOrders []domain.Order) []domain.YearlyData {
	deduped := DedupeOrders(allOrders)

	byYear := make(map[int][]domain.Order)
	var years []int
	for _, order := range deduped {
		year := order.OrderDate.Year()
		if _, ok := byYear[year]; !ok {
			years = append(years, year)
		}
		byYear[year] = append(byYear[year], order)
	}
	sort.Ints(years)

	yearly := make([]domain.YearlyData, 0, len(years))
	for _, year := range years {
		orders := byYear[year]
		primary := PrimaryCurrency(orders)

		spend := 0.0
		for _, order := range filterCurrency(orders, primary) {
			spend += order.TotalOwed
		}

		yearly = append(yearly, domain.YearlyData{
			Year:            year,
			TotalSpend:      spend,
			OrderCount:      len(orders),
			Orders:          sortOrdersByDateDesc(orders),
			PrimaryCurrency: primary,
		})
	}
	return yearly
}
