package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

const retailCSV = `Order ID,Order Date,Product Name,Total Owed,Unit Price,Quantity,ASIN,Currency
A1,2025-03-10,Widget,$29.99,$29.99,1,B000123,USD
A2,2025-04-02,Gadget,$10.00,$10.00,2,B000456,USD
`

func TestRead(t *testing.T) {
	file, err := Read(strings.NewReader(retailCSV), "Retail.OrderHistory.1.csv")
	require.NoError(t, err)

	assert.Equal(t, domain.FileTypeRetailOrders, file.Type)
	assert.Equal(t, "Retail.OrderHistory.1.csv", file.FileName)
	assert.Equal(t, 2, file.RowCount)
	assert.Equal(t, "A1", file.Rows[0]["Order ID"])
	assert.Equal(t, "$29.99", file.Rows[0]["Total Owed"])
}

func TestReadPadsShortRows(t *testing.T) {
	csv := "OrderID,AmountRefunded,RefundCompletionDate,Currency\nR1,$5.00\n"

	file, err := Read(strings.NewReader(csv), "refunds.csv")
	require.NoError(t, err)

	require.Len(t, file.Rows, 1)
	assert.Equal(t, "", file.Rows[0]["RefundCompletionDate"])
	assert.Equal(t, "", file.Rows[0]["Currency"])
}

func TestReadEmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""), "empty.csv")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(retailCSV), 0644))

	file, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.FileTypeRetailOrders, file.Type)
	assert.Equal(t, "orders.csv", file.FileName)
}

func TestParserDropsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(good, []byte(retailCSV), 0644))

	parser := NewParser(zerolog.Nop())
	files := parser.ParseFiles(context.Background(), []string{
		good,
		filepath.Join(dir, "missing.csv"),
	})

	require.Len(t, files, 1)
	assert.Equal(t, "orders.csv", files[0].FileName)
}

func TestParserKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(retailCSV), 0644))
		paths = append(paths, path)
	}

	parser := NewParser(zerolog.Nop())
	files := parser.ParseFiles(context.Background(), paths)

	require.Len(t, files, 3)
	assert.Equal(t, "a.csv", files[0].FileName)
	assert.Equal(t, "b.csv", files[1].FileName)
	assert.Equal(t, "c.csv", files[2].FileName)
}
