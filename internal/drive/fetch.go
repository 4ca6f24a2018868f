// backend-go/internal/drive/fetch.go
package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/service"
)

// FetchService pulls export CSVs out of a Drive folder and runs them through
// the wrapped pipeline. It exists for users who keep their data exports in
// Drive instead of uploading them directly.
type FetchService struct {
	driveService   *Service
	wrappedService *service.WrappedService
	downloadDir    string
	log            zerolog.Logger
}

func NewFetchService(driveService *Service, wrappedService *service.WrappedService, downloadDir string, log zerolog.Logger) *FetchService {
	if downloadDir == "" {
		downloadDir = "data/uploads"
	}
	return &FetchService{
		driveService:   driveService,
		wrappedService: wrappedService,
		downloadDir:    downloadDir,
		log:            log,
	}
}

// FetchFolder downloads every CSV in the folder and computes stats for the
// target year. Non-CSV files are skipped; a folder with no CSVs is an error.
func (s *FetchService) FetchFolder(ctx context.Context, datasetID, folderID, folderPath string, year int) (*domain.StatsResult, error) {
	if folderPath != "" {
		id, err := s.driveService.FindFolderByPath(folderPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve folder path: %w", err)
		}
		folderID = id
	}

	files, err := s.driveService.ListFiles(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder: %w", err)
	}

	dir := filepath.Join(s.downloadDir, datasetID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	var paths []string
	for _, file := range files {
		if !strings.EqualFold(filepath.Ext(file.Name), ".csv") && file.MimeType != "text/csv" {
			continue
		}

		destPath := filepath.Join(dir, filepath.Base(file.Name))
		if err := s.downloadTo(file.ID, destPath); err != nil {
			s.log.Warn().Err(err).Str("file", file.Name).Msg("skipping file that failed to download")
			continue
		}
		paths = append(paths, destPath)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no CSV files in drive folder")
	}

	s.log.Info().
		Str("dataset", datasetID).
		Int("files", len(paths)).
		Int("year", year).
		Msg("processing drive folder")

	return s.wrappedService.ProcessUpload(ctx, datasetID, paths, year)
}

func (s *FetchService) downloadTo(fileID, destPath string) error {
	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer f.Close()

	if err := s.driveService.DownloadFile(fileID, f); err != nil {
		os.Remove(destPath)
		return err
	}
	return nil
}
