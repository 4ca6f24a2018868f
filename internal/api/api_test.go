package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/cache"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/ingest"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/service"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/storage"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/wrapped"
)

const retailExport = `Order ID,Order Date,Currency,Total Owed,Unit Price,Quantity,Product Name,ASIN
A1,2025-03-10,USD,$29.99,$29.99,1,Widget,B000123
A2,2024-07-04,USD,$12.50,$12.50,1,Gadget,B000456
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	svc := service.NewWrappedService(
		ingest.NewParser(log),
		wrapped.NewEngine(log, config.DefaultLimits),
		nil,
		storage.NewLocalStore(t.TempDir(), 0),
		cache.NewNoopStatsCache(),
		log,
	)

	return NewRouter(&Services{
		WrappedService: svc,
		UploadDir:      t.TempDir(),
	}, []string{"*"})
}

func uploadExport(t *testing.T, router *gin.Engine) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "Retail.OrderHistory.1.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(retailExport))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("dataset_id", "ds1"))
	require.NoError(t, writer.WriteField("year", "2025"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wrapped/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUploadAndStats(t *testing.T) {
	router := newTestRouter(t)
	uploadExport(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wrapped/stats?dataset_id=ds1&year=2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.InDelta(t, 29.99, stats["total_gross_spend"], 1e-9)
	assert.Equal(t, "USD", stats["primary_currency"])
}

func TestYearsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	uploadExport(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wrapped/years?dataset_id=ds1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Years []int `json:"years"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, []int{2025, 2024}, payload.Years)
}

func TestOrdersEndpoint(t *testing.T) {
	router := newTestRouter(t)
	uploadExport(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wrapped/orders?dataset_id=ds1&year=2025&search=widget", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Orders []struct {
			ProductName string `json:"product_name"`
		} `json:"orders"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "Widget", page.Orders[0].ProductName)
	assert.Equal(t, 1, page.Pagination.Total)
}

func TestStatsUnknownDataset(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wrapped/stats?dataset_id=nobody&year=2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadWithoutFiles(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wrapped/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
