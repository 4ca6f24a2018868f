// backend-go/internal/api/handlers/wrapped_handler.go
package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/service"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/wrapped"
)

type WrappedHandler struct {
	wrappedService *service.WrappedService
	uploadDir      string
}

func NewWrappedHandler(wrappedService *service.WrappedService, uploadDir string) *WrappedHandler {
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}
	return &WrappedHandler{wrappedService: wrappedService, uploadDir: uploadDir}
}

// Upload accepts the export CSVs, runs the full computation and returns the
// stats bundle. Processing is synchronous: the caller wants the numbers back.
func (h *WrappedHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	datasetID := datasetIDFrom(c)
	year := parsePositiveIntWithDefault(c.PostForm("year"), time.Now().Year())

	paths := make([]string, 0, len(files))
	for _, file := range files {
		// Save the uploaded file before parsing
		filePath := filepath.Join(h.uploadDir, datasetID, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, filePath); err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
			continue
		}
		paths = append(paths, filePath)
	}

	if len(paths) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid files to process"})
		return
	}

	result, err := h.wrappedService.ProcessUpload(c.Request.Context(), datasetID, paths, year)
	if err != nil {
		log.Error().Err(err).Str("dataset", datasetID).Msg("failed to process upload")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to process export files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dataset_id":     datasetID,
		"year":           year,
		"stats":          result.Stats,
		"processed_data": result.ProcessedData,
	})
}

// GetStats serves the headline stats for one year.
func (h *WrappedHandler) GetStats(c *gin.Context) {
	datasetID := datasetIDFrom(c)
	year := parsePositiveIntWithDefault(c.Query("year"), time.Now().Year())

	stats, err := h.wrappedService.GetStats(c.Request.Context(), datasetID, year)
	if err != nil {
		if errors.Is(err, service.ErrDatasetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetYears lists the years the dataset has activity in.
func (h *WrappedHandler) GetYears(c *gin.Context) {
	datasetID := datasetIDFrom(c)

	years, err := h.wrappedService.GetYears(c.Request.Context(), datasetID)
	if err != nil {
		if errors.Is(err, service.ErrDatasetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch years"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"years": years})
}

// GetYearlyData serves the cross-year spending rollup.
func (h *WrappedHandler) GetYearlyData(c *gin.Context) {
	datasetID := datasetIDFrom(c)

	yearly, err := h.wrappedService.GetYearlyData(c.Request.Context(), datasetID)
	if err != nil {
		if errors.Is(err, service.ErrDatasetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch yearly data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"yearly": yearly})
}

// ListOrders serves one page of the order detail listing with search and
// sorting.
func (h *WrappedHandler) ListOrders(c *gin.Context) {
	datasetID := datasetIDFrom(c)

	query := service.OrderQuery{
		Year:    parsePositiveIntWithDefault(c.Query("year"), time.Now().Year()),
		Search:  c.Query("search"),
		SortBy:  wrapped.SortField(c.DefaultQuery("sort_by", "date")),
		Desc:    c.DefaultQuery("sort_direction", "desc") != "asc",
		Page:    parsePositiveIntWithDefault(c.Query("page"), 1),
		PerPage: parsePositiveIntWithDefault(c.Query("per_page"), 20),
	}

	page, err := h.wrappedService.ListOrders(c.Request.Context(), datasetID, query)
	if err != nil {
		if errors.Is(err, service.ErrDatasetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func datasetIDFrom(c *gin.Context) string {
	id := strings.TrimSpace(c.Query("dataset_id"))
	if id == "" {
		id = strings.TrimSpace(c.PostForm("dataset_id"))
	}
	if id == "" {
		return "default"
	}
	return id
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}
