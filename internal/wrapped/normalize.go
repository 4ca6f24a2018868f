// backend-go/internal/wrapped/normalize.go
package wrapped

import (
	"strings"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/ingest"
)

// Schema-specific normalizers. Each filters its rows through a shape guard,
// maps the survivors to the canonical Order/Refund model and drops any row
// whose date does not parse. Field extraction is exact-case: the three export
// schemas spell their ID and date columns differently and the spellings are
// part of the schema.

func isRetailOrderRow(row map[string]string) bool {
	_, hasID := row["Order ID"]
	_, hasDate := row["Order Date"]
	return hasID && hasDate
}

func isDigitalItemRow(row map[string]string) bool {
	_, hasID := row["OrderId"]
	_, hasPrice := row["OurPrice"]
	return hasID && hasPrice
}

func isRefundPaymentRow(row map[string]string) bool {
	_, hasID := row["OrderID"]
	_, hasAmount := row["AmountRefunded"]
	return hasID && hasAmount
}

// NormalizeRetailOrders maps retail order history rows to Orders.
func NormalizeRetailOrders(rows []map[string]string) []domain.Order {
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		if !isRetailOrderRow(row) {
			continue
		}

		orderDate, ok := ingest.ParseOrderDate(row["Order Date"])
		if !ok {
			continue
		}

		productName := row["Product Name"]
		if productName == "" {
			productName = "Unknown Item"
		}

		orders = append(orders, domain.Order{
			OrderID:     row["Order ID"],
			OrderDate:   orderDate,
			TotalOwed:   ingest.ParseMoney(row["Total Owed"]),
			UnitPrice:   ingest.ParseMoney(row["Unit Price"]),
			ProductName: productName,
			Quantity:    ingest.ParseQuantity(row["Quantity"]),
			ASIN:        row["ASIN"],
			Currency:    ingest.ExtractCurrency(row),
			IsDigital:   false,
		})
	}
	return orders
}

// NormalizeDigitalOrders maps digital item rows to Orders. Credit-based
// purchases carry a zero OurPrice with the real value in ListPriceAmount, so
// the list price is the fallback.
func NormalizeDigitalOrders(rows []map[string]string) []domain.Order {
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		if !isDigitalItemRow(row) {
			continue
		}

		orderDate, ok := ingest.ParseOrderDate(row["OrderDate"])
		if !ok {
			continue
		}

		price := ingest.ParseMoney(row["OurPrice"])
		if price <= 0 {
			price = ingest.ParseMoney(row["ListPriceAmount"])
		}

		productName := row["ProductName"]
		if productName == "" {
			productName = "Unknown Digital Item"
		}

		orders = append(orders, domain.Order{
			OrderID:     row["OrderId"],
			OrderDate:   orderDate,
			TotalOwed:   price,
			UnitPrice:   price,
			ProductName: productName,
			Quantity:    ingest.ParseQuantity(row["QuantityOrdered"]),
			ASIN:        row["ASIN"],
			Currency:    ingest.ExtractCurrency(row),
			IsDigital:   true,
			Publisher:   effectivePublisher(row["SellerOfRecord"], row["Publisher"]),
		})
	}
	return orders
}

// effectivePublisher prefers SellerOfRecord (e.g. "Audible") unless it is a
// known placeholder, then the Publisher column, then gives up.
func effectivePublisher(sellerOfRecord, publisher string) string {
	sellerOfRecord = strings.TrimSpace(sellerOfRecord)
	if sellerOfRecord != "" &&
		sellerOfRecord != "Not Applicable" &&
		sellerOfRecord != "Vendor Details Not Available" {
		return sellerOfRecord
	}

	publisher = strings.TrimSpace(publisher)
	if publisher != "" && publisher != "Not Applicable" {
		return publisher
	}

	return ""
}

// NormalizeRefunds maps refund payment rows to Refunds.
func NormalizeRefunds(rows []map[string]string) []domain.Refund {
	refunds := make([]domain.Refund, 0, len(rows))
	for _, row := range rows {
		if !isRefundPaymentRow(row) {
			continue
		}

		refundDate, ok := ingest.ParseOrderDate(row["RefundCompletionDate"])
		if !ok {
			continue
		}

		refunds = append(refunds, domain.Refund{
			OrderID:        row["OrderID"],
			AmountRefunded: ingest.ParseMoney(row["AmountRefunded"]),
			RefundDate:     refundDate,
			Currency:       ingest.ExtractCurrency(row),
		})
	}
	return refunds
}

// NormalizeFiles runs every parsed file through its schema normalizer and
// concatenates the results. Unknown files contribute nothing.
func NormalizeFiles(files []*domain.ParsedFile) ([]domain.Order, []domain.Refund) {
	var (
		orders  []domain.Order
		refunds []domain.Refund
	)

	for _, file := range files {
		if file == nil {
			continue
		}
		switch file.Type {
		case domain.FileTypeRetailOrders:
			orders = append(orders, NormalizeRetailOrders(file.Rows)...)
		case domain.FileTypeDigitalItems:
			orders = append(orders, NormalizeDigitalOrders(file.Rows)...)
		case domain.FileTypeRefundPayments:
			refunds = append(refunds, NormalizeRefunds(file.Rows)...)
		}
	}

	return orders, refunds
}
