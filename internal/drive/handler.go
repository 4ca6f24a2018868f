package drive

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

type Handler struct {
	service      *Service
	fetchService *FetchService
}

func NewHandler(service *Service, fetchService *FetchService) *Handler {
	return &Handler{
		service:      service,
		fetchService: fetchService,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/drive/files", h.ListFiles).Methods("GET")
	router.HandleFunc("/api/drive/files/download", h.DownloadFile).Methods("GET")
	router.HandleFunc("/api/drive/fetch", h.FetchFolder).Methods("POST")
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")
	folderPath := query.Get("path")

	var files []*File
	var err error

	if folderPath != "" {
		// Find folder by path
		folderID, err = h.service.FindFolderByPath(folderPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}

	files, err = h.service.ListFiles(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("fileId")
	if fileID == "" {
		http.Error(w, "fileId parameter is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=data.csv")

	err := h.service.DownloadFile(fileID, w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// FetchFolder pulls every CSV in a Drive folder through the wrapped pipeline
// and returns the computed stats.
func (h *Handler) FetchFolder(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")
	folderPath := query.Get("path")
	if folderID == "" && folderPath == "" {
		http.Error(w, "folderId or path parameter is required", http.StatusBadRequest)
		return
	}

	datasetID := strings.TrimSpace(query.Get("datasetId"))
	if datasetID == "" {
		datasetID = "default"
	}

	year := time.Now().Year()
	if y, err := strconv.Atoi(query.Get("year")); err == nil && y > 0 {
		year = y
	}

	result, err := h.fetchService.FetchFolder(r.Context(), datasetID, folderID, folderPath, year)
	if err != nil {
		http.Error(w, fmt.Sprintf("fetch failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "success",
		"dataset_id": datasetID,
		"year":       year,
		"stats":      result.Stats,
	})
}
