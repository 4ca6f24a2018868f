package wrapped

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

func retailRow(overrides map[string]string) map[string]string {
	row := map[string]string{
		"Order ID":     "A1",
		"Order Date":   "2025-03-10",
		"Total Owed":   "$29.99",
		"Unit Price":   "$29.99",
		"Product Name": "Widget",
		"Quantity":     "1",
		"ASIN":         "B000123",
		"Currency":     "USD",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func digitalRow(overrides map[string]string) map[string]string {
	row := map[string]string{
		"OrderId":         "D1",
		"OrderDate":       "2025-05-20",
		"ProductName":     "Some Novel",
		"OurPrice":        "$9.99",
		"ListPriceAmount": "$14.99",
		"Publisher":       "Tor Books",
		"SellerOfRecord":  "Not Applicable",
		"QuantityOrdered": "1",
		"ASIN":            "B00DIGITAL",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestNormalizeRetailOrders(t *testing.T) {
	orders := NormalizeRetailOrders([]map[string]string{retailRow(nil)})

	require.Len(t, orders, 1)
	order := orders[0]
	assert.Equal(t, "A1", order.OrderID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), order.OrderDate)
	assert.InDelta(t, 29.99, order.TotalOwed, 1e-9)
	assert.Equal(t, "Widget", order.ProductName)
	assert.Equal(t, 1, order.Quantity)
	assert.Equal(t, "USD", order.Currency)
	assert.False(t, order.IsDigital)
}

func TestNormalizeRetailOrdersDropsBadDates(t *testing.T) {
	orders := NormalizeRetailOrders([]map[string]string{
		retailRow(nil),
		retailRow(map[string]string{"Order ID": "A2", "Order Date": "pending"}),
		retailRow(map[string]string{"Order ID": "A3", "Order Date": ""}),
	})

	require.Len(t, orders, 1)
	assert.Equal(t, "A1", orders[0].OrderID)
}

func TestNormalizeRetailOrdersGuardsShape(t *testing.T) {
	// A row missing the schema's exact-case keys never becomes an Order.
	orders := NormalizeRetailOrders([]map[string]string{
		{"OrderId": "D1", "OrderDate": "2025-01-01", "OurPrice": "$1.00"},
	})
	assert.Empty(t, orders)
}

func TestNormalizeRetailOrdersDefaults(t *testing.T) {
	orders := NormalizeRetailOrders([]map[string]string{
		retailRow(map[string]string{"Product Name": "", "Quantity": "", "Currency": "", "Total Owed": "n/a"}),
	})

	require.Len(t, orders, 1)
	assert.Equal(t, "Unknown Item", orders[0].ProductName)
	assert.Equal(t, 1, orders[0].Quantity)
	assert.Equal(t, "USD", orders[0].Currency)
	assert.Zero(t, orders[0].TotalOwed)
}

func TestNormalizeDigitalOrdersPriceFallback(t *testing.T) {
	tests := []struct {
		name      string
		ourPrice  string
		listPrice string
		want      float64
	}{
		{"our price wins when positive", "$9.99", "$14.99", 9.99},
		{"zero price falls back to list", "$0.00", "$14.99", 14.99},
		{"credit purchase with empty price", "", "$7.49", 7.49},
		{"both zero stays zero", "0", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := NormalizeDigitalOrders([]map[string]string{
				digitalRow(map[string]string{"OurPrice": tt.ourPrice, "ListPriceAmount": tt.listPrice}),
			})
			require.Len(t, orders, 1)
			assert.InDelta(t, tt.want, orders[0].TotalOwed, 1e-9)
			assert.InDelta(t, tt.want, orders[0].UnitPrice, 1e-9)
			assert.True(t, orders[0].IsDigital)
		})
	}
}

func TestEffectivePublisher(t *testing.T) {
	tests := []struct {
		name           string
		sellerOfRecord string
		publisher      string
		want           string
	}{
		{"seller of record preferred", "Audible", "Tor Books", "Audible"},
		{"not-applicable seller falls back", "Not Applicable", "Tor Books", "Tor Books"},
		{"vendor placeholder falls back", "Vendor Details Not Available", "Tor Books", "Tor Books"},
		{"not-applicable publisher unusable", "Not Applicable", "Not Applicable", ""},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := NormalizeDigitalOrders([]map[string]string{
				digitalRow(map[string]string{"SellerOfRecord": tt.sellerOfRecord, "Publisher": tt.publisher}),
			})
			require.Len(t, orders, 1)
			assert.Equal(t, tt.want, orders[0].Publisher)
		})
	}
}

func TestNormalizeRefunds(t *testing.T) {
	refunds := NormalizeRefunds([]map[string]string{
		{
			"OrderID":              "A1",
			"AmountRefunded":       "$29.99",
			"RefundCompletionDate": "2025-03-15",
			"Currency":             "USD",
		},
		{
			// unparseable date drops the row
			"OrderID":              "A2",
			"AmountRefunded":       "$5.00",
			"RefundCompletionDate": "in progress",
		},
	})

	require.Len(t, refunds, 1)
	assert.Equal(t, "A1", refunds[0].OrderID)
	assert.InDelta(t, 29.99, refunds[0].AmountRefunded, 1e-9)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), refunds[0].RefundDate)
}

func TestNormalizeFiles(t *testing.T) {
	files := []*domain.ParsedFile{
		{
			Type: domain.FileTypeRetailOrders,
			Rows: []map[string]string{retailRow(nil)},
		},
		{
			Type: domain.FileTypeDigitalItems,
			Rows: []map[string]string{digitalRow(nil)},
		},
		{
			Type: domain.FileTypeRefundPayments,
			Rows: []map[string]string{{
				"OrderID":              "A1",
				"AmountRefunded":       "$29.99",
				"RefundCompletionDate": "2025-03-15",
			}},
		},
		{
			// unknown files contribute nothing
			Type: domain.FileTypeUnknown,
			Rows: []map[string]string{{"Website": "x"}},
		},
		nil,
	}

	orders, refunds := NormalizeFiles(files)
	assert.Len(t, orders, 2)
	assert.Len(t, refunds, 1)
}
