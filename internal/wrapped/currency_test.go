package wrapped

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

func currencyOrder(currency string, amount float64) domain.Order {
	return domain.Order{
		OrderID:     "X",
		OrderDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalOwed:   amount,
		UnitPrice:   amount,
		ProductName: "Item",
		Quantity:    1,
		Currency:    currency,
	}
}

func TestPrimaryCurrency(t *testing.T) {
	orders := []domain.Order{
		currencyOrder("USD", 10),
		currencyOrder("EUR", 10),
		currencyOrder("USD", 10),
	}
	assert.Equal(t, "USD", PrimaryCurrency(orders))
}

func TestPrimaryCurrencyTieFirstSeenWins(t *testing.T) {
	orders := []domain.Order{
		currencyOrder("EUR", 10),
		currencyOrder("USD", 10),
		currencyOrder("EUR", 10),
		currencyOrder("USD", 10),
	}
	// EUR appeared first; on equal counts the first currency seen wins.
	assert.Equal(t, "EUR", PrimaryCurrency(orders))
}

func TestPrimaryCurrencyDefaults(t *testing.T) {
	assert.Equal(t, "USD", PrimaryCurrency(nil))

	// Unset currency counts as USD, not as a separate bucket.
	orders := []domain.Order{currencyOrder("", 10), currencyOrder("USD", 10)}
	breakdown := BreakdownCurrencies(orders)
	require.Len(t, breakdown, 1)
	assert.Equal(t, 2, breakdown[0].OrderCount)
}

func TestBreakdownCurrencies(t *testing.T) {
	orders := []domain.Order{
		currencyOrder("EUR", 5),
		currencyOrder("USD", 10),
		currencyOrder("USD", 20),
		currencyOrder("USD", 30),
		currencyOrder("GBP", 7),
	}

	breakdown := BreakdownCurrencies(orders)
	require.Len(t, breakdown, 3)

	assert.Equal(t, "USD", breakdown[0].Currency)
	assert.Equal(t, 3, breakdown[0].OrderCount)
	assert.InDelta(t, 60, breakdown[0].Amount, 1e-9)

	// Breakdown line counts partition the order set.
	total := 0
	for _, entry := range breakdown {
		total += entry.OrderCount
	}
	assert.Equal(t, len(orders), total)

	// Descending by count; equal counts keep first-seen order.
	assert.Equal(t, "EUR", breakdown[1].Currency)
	assert.Equal(t, "GBP", breakdown[2].Currency)
}

func TestFilterCurrency(t *testing.T) {
	orders := []domain.Order{
		currencyOrder("USD", 10),
		currencyOrder("EUR", 20),
		currencyOrder("", 30), // unset counts as USD
	}

	usd := filterCurrency(orders, "USD")
	require.Len(t, usd, 2)
	assert.InDelta(t, 10, usd[0].TotalOwed, 1e-9)
	assert.InDelta(t, 30, usd[1].TotalOwed, 1e-9)
}
