package exporters

import "github.com/clipdoc/clipdoc/internal/clippings"

type BookExporter interface {
	Export(books []clippings.Book) (ExportResult, error)
}

// BookFailure records a single book whose document could not be saved.
type BookFailure struct {
	Title string `json:"title"`
	Err   string `json:"error"`
}

type ExportResult struct {
	BooksProcessed      int           `json:"books_processed"`
	HighlightsProcessed int           `json:"highlights_processed"`
	BooksFailed         int           `json:"books_failed"`
	Failures            []BookFailure `json:"failures,omitempty"`
}
