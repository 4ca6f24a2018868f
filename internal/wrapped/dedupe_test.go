package wrapped

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

func order(id, asin, product string, date time.Time) domain.Order {
	return domain.Order{
		OrderID:     id,
		OrderDate:   date,
		ProductName: product,
		ASIN:        asin,
		TotalOwed:   10,
		UnitPrice:   10,
		Quantity:    1,
		Currency:    "USD",
	}
}

func TestDedupeOrders(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		order("A1", "B001", "Widget", day),
		order("A1", "B001", "Widget", day), // same line from an overlapping export
		order("A1", "B002", "Gadget", day), // second line of the same order survives
		order("A2", "B001", "Widget", day), // same product, different order
	}

	deduped := DedupeOrders(orders)
	require.Len(t, deduped, 3)
	assert.Equal(t, "B001", deduped[0].ASIN)
	assert.Equal(t, "B002", deduped[1].ASIN)
	assert.Equal(t, "A2", deduped[2].OrderID)
}

func TestDedupeOrdersFallsBackToProductName(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		order("A1", "", "Widget", day),
		order("A1", "", "Widget", day),
		order("A1", "", "Gadget", day),
	}

	deduped := DedupeOrders(orders)
	assert.Len(t, deduped, 2)
}

func TestDedupeOrdersFirstOccurrenceWins(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := order("A1", "B001", "Widget", day)
	first.TotalOwed = 11

	second := order("A1", "B001", "Widget", day.AddDate(0, 0, 1))
	second.TotalOwed = 99

	deduped := DedupeOrders([]domain.Order{first, second})
	require.Len(t, deduped, 1)
	assert.InDelta(t, 11, deduped[0].TotalOwed, 1e-9)
}

func TestDedupeOrdersIdempotent(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		order("A1", "B001", "Widget", day),
		order("A1", "B001", "Widget", day),
		order("A2", "", "Gadget", day),
	}

	once := DedupeOrders(orders)
	twice := DedupeOrders(once)
	assert.Equal(t, once, twice)
}

func TestDedupeOrdersEmpty(t *testing.T) {
	assert.Empty(t, DedupeOrders(nil))
}
