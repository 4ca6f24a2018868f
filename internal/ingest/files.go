// backend-go/internal/ingest/files.go
package ingest

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// Parser reads a set of export files concurrently. Each file is an
// independent unit of work; the stats engine only runs after every file has
// finished. A file that fails to tokenize is dropped with a warning, the rest
// of the batch goes through.
type Parser struct {
	log zerolog.Logger
}

func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// ParseFiles tokenizes every path concurrently and returns the parsed files
// in input order. Unknown-schema files are kept (tagged unknown) so callers
// can surface them; the engine excludes them on its own.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) []*domain.ParsedFile {
	type indexed struct {
		idx  int
		file *domain.ParsedFile
	}

	var (
		wg       sync.WaitGroup
		resultCh = make(chan indexed, len(paths))
	)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				return
			}

			file, err := ReadFile(path)
			if err != nil {
				p.log.Warn().Err(err).Str("file", path).Msg("dropping unreadable export file")
				return
			}
			if file.Type == domain.FileTypeUnknown {
				p.log.Warn().Str("file", path).Msg("export file matches no known schema")
			}

			resultCh <- indexed{idx: idx, file: file}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	byIndex := make(map[int]*domain.ParsedFile, len(paths))
	for r := range resultCh {
		byIndex[r.idx] = r.file
	}

	files := make([]*domain.ParsedFile, 0, len(byIndex))
	for i := range paths {
		if f, ok := byIndex[i]; ok {
			files = append(files, f)
		}
	}

	return files
}
