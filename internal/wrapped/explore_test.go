package wrapped

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

func exploreOrders() []domain.Order {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Order{
		{OrderID: "A1", OrderDate: day(1), TotalOwed: 30, ProductName: "Zebra Print"},
		{OrderID: "A2", OrderDate: day(5), TotalOwed: 10, ProductName: "apple slicer"},
		{OrderID: "A3", OrderDate: day(3), TotalOwed: 20, ProductName: "Mango Crate"},
	}
}

func TestSortOrders(t *testing.T) {
	orders := exploreOrders()

	byDate := SortOrders(orders, SortByDate, true)
	assert.Equal(t, "A2", byDate[0].OrderID)

	byAmount := SortOrders(orders, SortByAmount, false)
	assert.Equal(t, "A2", byAmount[0].OrderID)
	assert.Equal(t, "A1", byAmount[2].OrderID)

	// Product sort is case-insensitive.
	byProduct := SortOrders(orders, SortByProduct, false)
	assert.Equal(t, "apple slicer", byProduct[0].ProductName)

	// Unknown field falls back to date; input stays untouched.
	_ = SortOrders(orders, SortField("bogus"), false)
	assert.Equal(t, "A1", orders[0].OrderID)
}

func TestFilterOrdersMatchesNameAndID(t *testing.T) {
	orders := exploreOrders()

	assert.Len(t, FilterOrders(orders, "MANGO"), 1)
	assert.Len(t, FilterOrders(orders, "a2"), 1)
	assert.Len(t, FilterOrders(orders, ""), 3)
	assert.Empty(t, FilterOrders(orders, "nothing"))
}

func TestPaginateClampsPage(t *testing.T) {
	orders := exploreOrders()

	page, p := Paginate(orders, 1, 2)
	require.Len(t, page, 2)
	assert.Equal(t, 2, p.TotalPages())

	// Past-the-end page clamps to the last page.
	page, p = Paginate(orders, 99, 2)
	require.Len(t, page, 1)
	assert.Equal(t, 2, p.Page)

	// Zero and negative pages clamp to the first.
	page, p = Paginate(orders, -1, 2)
	require.Len(t, page, 2)
	assert.Equal(t, 1, p.Page)
}

func TestPaginateEmpty(t *testing.T) {
	page, p := Paginate(nil, 1, 20)
	assert.Empty(t, page)
	assert.Equal(t, 1, p.TotalPages())
}
