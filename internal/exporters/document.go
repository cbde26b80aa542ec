package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipdoc/clipdoc/internal/clippings"
	"github.com/clipdoc/clipdoc/internal/document"
	"github.com/clipdoc/clipdoc/internal/utils"
)

const (
	documentTitlePrefix = "Kindle Highlights - "
	filenameSuffix      = "_Highlights"

	headerSeparatorWidth    = 50
	highlightSeparatorWidth = 30
)

// DocumentExporter renders each book into its own document file under
// OutputDir. One book failing to save never aborts the batch; the
// failure is recorded in the result and the remaining books are written.
type DocumentExporter struct {
	OutputDir string
	Format    document.Format

	// Now supplies the generation timestamp, captured once per document.
	Now func() time.Time
}

func NewDocumentExporter(outputDir string, format document.Format) *DocumentExporter {
	return &DocumentExporter{
		OutputDir: outputDir,
		Format:    format,
		Now:       time.Now,
	}
}

func (e *DocumentExporter) ensureOutputDir() error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ExportBook renders a single book and saves it as
// {OutputDir}/{sanitized title}_Highlights.{ext}. It returns the saved
// filename.
func (e *DocumentExporter) ExportBook(book clippings.Book) (string, error) {
	builder, err := document.NewBuilder(e.Format)
	if err != nil {
		return "", err
	}

	builder.Heading(1, documentTitlePrefix+book.Title)

	now := e.Now()
	builder.Paragraph(fmt.Sprintf("Generated on: %s at %s",
		now.Format("02/01/2006"), now.Format("15:04")), false)
	builder.Paragraph(strings.Repeat("=", headerSeparatorWidth), false)

	for i, highlight := range book.Highlights {
		builder.Heading(2, fmt.Sprintf("Highlight %d", i+1))

		if highlight.Metadata != "" {
			builder.Paragraph(highlight.Metadata, true)
		}
		builder.Paragraph(`"`+highlight.Text+`"`, false)

		if i < len(book.Highlights)-1 {
			builder.Paragraph(strings.Repeat("-", highlightSeparatorWidth), false)
		}
	}

	builder.PageBreak()
	builder.Heading(1, "Summary")
	builder.Paragraph(fmt.Sprintf("Total highlights extracted: %d", len(book.Highlights)), false)

	filename := utils.SanitizeFilename(book.Title) + filenameSuffix + "." + builder.Extension()
	path := filepath.Join(e.OutputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}

	if _, err := builder.WriteTo(file); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return filename, nil
}

// Export renders every book, collecting per-book failures instead of
// aborting on them. Only the output directory setup can fail the batch.
func (e *DocumentExporter) Export(books []clippings.Book) (ExportResult, error) {
	result := ExportResult{}

	if err := e.ensureOutputDir(); err != nil {
		return result, err
	}

	for _, book := range books {
		filename, err := e.ExportBook(book)
		if err != nil {
			log.Printf("Export failed for %q: %v", book.Title, err)
			result.BooksFailed++
			result.Failures = append(result.Failures, BookFailure{
				Title: book.Title,
				Err:   err.Error(),
			})
			continue
		}

		log.Printf("Document saved: %s (%d highlights)", filename, len(book.Highlights))
		result.BooksProcessed++
		result.HighlightsProcessed += len(book.Highlights)
	}

	return result, nil
}
