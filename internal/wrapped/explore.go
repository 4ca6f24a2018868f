// backend-go/internal/wrapped/explore.go
package wrapped

import (
	"sort"
	"strings"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// Exploration helpers behind the transaction-listing endpoints: sorting,
// text search and pagination over the preserved order/refund detail.

// SortField names an Order column the listing can sort on.
type SortField string

const (
	SortByDate    SortField = "date"
	SortByAmount  SortField = "amount"
	SortByProduct SortField = "product"
)

// SortOrders returns a copy of orders sorted by the given field. Unknown
// fields fall back to date. desc=false gives ascending.
func SortOrders(orders []domain.Order, field SortField, desc bool) []domain.Order {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)

	less := func(i, j int) bool {
		switch field {
		case SortByAmount:
			return sorted[i].TotalOwed < sorted[j].TotalOwed
		case SortByProduct:
			return strings.ToLower(sorted[i].ProductName) < strings.ToLower(sorted[j].ProductName)
		default:
			return sorted[i].OrderDate.Before(sorted[j].OrderDate)
		}
	}

	if desc {
		sort.SliceStable(sorted, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(sorted, less)
	}
	return sorted
}

// FilterOrders keeps orders whose product name or order ID contains the
// search term, case-insensitively. A blank term keeps everything.
func FilterOrders(orders []domain.Order, term string) []domain.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}

	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if strings.Contains(strings.ToLower(order.ProductName), term) ||
			strings.Contains(strings.ToLower(order.OrderID), term) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// FilterRefunds is the refund counterpart of FilterOrders, matching the
// denormalized product name or the order ID.
func FilterRefunds(refunds []domain.EnrichedRefund, term string) []domain.EnrichedRefund {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return refunds
	}

	filtered := make([]domain.EnrichedRefund, 0, len(refunds))
	for _, refund := range refunds {
		if strings.Contains(strings.ToLower(refund.ProductName), term) ||
			strings.Contains(strings.ToLower(refund.OrderID), term) {
			filtered = append(filtered, refund)
		}
	}
	return filtered
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// TotalPages derives the page count, at least 1.
func (p Pagination) TotalPages() int {
	if p.PerPage <= 0 {
		return 1
	}
	pages := (p.Total + p.PerPage - 1) / p.PerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Paginate slices one page out of orders, clamping the page number into
// range.
func Paginate(orders []domain.Order, page, perPage int) ([]domain.Order, Pagination) {
	if perPage <= 0 {
		perPage = 20
	}

	p := Pagination{Page: page, PerPage: perPage, Total: len(orders)}
	if p.Page < 1 {
		p.Page = 1
	}
	if max := p.TotalPages(); p.Page > max {
		p.Page = max
	}

	start := (p.Page - 1) * perPage
	if start > len(orders) {
		start = len(orders)
	}
	end := start + perPage
	if end > len(orders) {
		end = len(orders)
	}

	return orders[start:end], p
}
