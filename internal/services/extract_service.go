package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/clipdoc/clipdoc/internal/clippings"
	"github.com/clipdoc/clipdoc/internal/database"
	"github.com/clipdoc/clipdoc/internal/entities"
	"github.com/clipdoc/clipdoc/internal/exporters"
)

// ErrInputNotFound means the clippings file does not exist. The run is
// aborted before anything is written.
var ErrInputNotFound = errors.New("clippings file not found")

// ExtractResult is the structured outcome of one extraction run.
type ExtractResult struct {
	BooksFound          int                     `json:"books_found"`
	BooksExported       int                     `json:"books_exported"`
	BooksFailed         int                     `json:"books_failed"`
	HighlightsProcessed int                     `json:"highlights_processed"`
	Failures            []exporters.BookFailure `json:"failures,omitempty"`
}

// ExtractService runs the full pipeline: parse the clippings content,
// render one document per book, and optionally archive the outcome.
type ExtractService struct {
	parser   *clippings.Parser
	exporter exporters.BookExporter
	db       *database.Database // nil disables archiving
}

func NewExtractService(exporter exporters.BookExporter, db *database.Database) *ExtractService {
	return &ExtractService{
		parser:   clippings.NewParser(),
		exporter: exporter,
		db:       db,
	}
}

// ExtractFile reads the clippings file and extracts it. A missing or
// unreadable input aborts before any document or directory is created.
func (s *ExtractService) ExtractFile(path string) (ExtractResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ExtractResult{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return ExtractResult{}, fmt.Errorf("failed to read clippings file %s: %w", path, err)
	}

	return s.Extract(string(content), path)
}

// Extract parses raw clippings content and renders the documents.
// source labels the run in the archive ("upload" for HTTP imports).
// Zero parsed books is a clean no-op, not an error.
func (s *ExtractService) Extract(raw, source string) (ExtractResult, error) {
	startedAt := time.Now()

	books := s.parser.Parse(raw)
	if len(books) == 0 {
		return ExtractResult{}, nil
	}

	exportResult, err := s.exporter.Export(books)
	if err != nil {
		return ExtractResult{}, fmt.Errorf("failed to export documents: %w", err)
	}

	result := ExtractResult{
		BooksFound:          len(books),
		BooksExported:       exportResult.BooksProcessed,
		BooksFailed:         exportResult.BooksFailed,
		HighlightsProcessed: exportResult.HighlightsProcessed,
		Failures:            exportResult.Failures,
	}

	s.archive(books, source, startedAt, result)

	return result, nil
}

// archive persists books and the run record. Archive failures are logged
// and never fail the extraction; the documents are the primary output.
func (s *ExtractService) archive(books []clippings.Book, source string, startedAt time.Time, result ExtractResult) {
	if s.db == nil {
		return
	}

	for _, book := range books {
		if err := s.db.SaveBook(book); err != nil {
			log.Printf("Failed to archive %q: %v", book.Title, err)
		}
	}

	completedAt := time.Now()
	run := entities.ExtractionRun{
		Source:              source,
		OutputDir:           s.outputDir(),
		Format:              s.format(),
		BooksFound:          result.BooksFound,
		BooksExported:       result.BooksExported,
		BooksFailed:         result.BooksFailed,
		HighlightsProcessed: result.HighlightsProcessed,
		Errors:              joinFailures(result.Failures),
		StartedAt:           startedAt,
		CompletedAt:         &completedAt,
	}
	if err := s.db.SaveRun(&run); err != nil {
		log.Printf("Failed to record extraction run: %v", err)
	}
}

func (s *ExtractService) outputDir() string {
	if e, ok := s.exporter.(*exporters.DocumentExporter); ok {
		return e.OutputDir
	}
	return ""
}

func (s *ExtractService) format() string {
	if e, ok := s.exporter.(*exporters.DocumentExporter); ok {
		return string(e.Format)
	}
	return ""
}

func joinFailures(failures []exporters.BookFailure) string {
	if len(failures) == 0 {
		return ""
	}
	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Title, f.Err))
	}
	return strings.Join(parts, "; ")
}
