// backend-go/internal/wrapped/dedupe.go
package wrapped

import "github.com/andresuchdata/orderwrapped/backend-go/internal/domain"

// DedupeOrders removes duplicate order lines that arise when uploaded export
// files cover overlapping date ranges. The key is order ID plus ASIN, falling
// back to product name when the ASIN is missing: ASINs are stable across
// exports while product-name strings pick up encoding and whitespace
// variants. First occurrence in input order wins. Idempotent.
func DedupeOrders(orders []domain.Order) []domain.Order {
	seen := make(map[string]struct{}, len(orders))
	deduped := make([]domain.Order, 0, len(orders))

	for _, order := range orders {
		line := order.ASIN
		if line == "" {
			line = order.ProductName
		}
		key := order.OrderID + "-" + line

		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, order)
	}

	return deduped
}
