// backend-go/internal/ingest/csv.go
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// Read tokenizes one CSV export into header-keyed row maps and classifies it.
// Short rows are padded with empty strings so every row exposes the full
// header set; classification failures are not errors, the file comes back
// tagged unknown.
func Read(r io.Reader, fileName string) (*domain.ParsedFile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports contain ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &domain.ParsedFile{
		Type:     DetectFileType(header),
		FileName: fileName,
		Rows:     rows,
		RowCount: len(rows),
	}, nil
}

// ReadFile tokenizes a CSV export from disk.
func ReadFile(path string) (*domain.ParsedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Read(f, filepath.Base(path))
}
