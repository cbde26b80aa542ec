package exporters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipdoc/clipdoc/internal/clippings"
	"github.com/clipdoc/clipdoc/internal/document"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
}

func testBook() clippings.Book {
	return clippings.Book{
		Title: "Book A",
		Highlights: []clippings.Highlight{
			{BookInfo: "Book A (Author)", Metadata: "Page 1", Text: "Hello"},
			{BookInfo: "Book A", Metadata: "", Text: "World"},
		},
	}
}

func TestDocumentExporter_ExportBook_Markdown(t *testing.T) {
	dir := t.TempDir()
	exporter := NewDocumentExporter(dir, document.FormatMarkdown)
	exporter.Now = fixedClock

	filename, err := exporter.ExportBook(testBook())
	require.NoError(t, err)
	assert.Equal(t, "Book A_Highlights.md", filename)

	content, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	out := string(content)

	assert.Contains(t, out, "# Kindle Highlights - Book A\n")
	assert.Contains(t, out, "Generated on: 09/03/2024 at 14:30\n")
	assert.Contains(t, out, "==================================================\n")
	assert.Contains(t, out, "## Highlight 1\n")
	assert.Contains(t, out, "*Page 1*\n")
	assert.Contains(t, out, "\"Hello\"\n")
	assert.Contains(t, out, "------------------------------\n")
	assert.Contains(t, out, "## Highlight 2\n")
	assert.Contains(t, out, "\"World\"\n")
	assert.Contains(t, out, "# Summary\n")
	assert.Contains(t, out, "Total highlights extracted: 2\n")

	// No separator after the last highlight.
	assert.Equal(t, 1, strings.Count(out, "------------------------------"))
}

func TestDocumentExporter_ExportBook_SkipsEmptyMetadata(t *testing.T) {
	dir := t.TempDir()
	exporter := NewDocumentExporter(dir, document.FormatMarkdown)
	exporter.Now = fixedClock

	book := clippings.Book{
		Title:      "No Meta",
		Highlights: []clippings.Highlight{{BookInfo: "No Meta", Text: "text"}},
	}

	filename, err := exporter.ExportBook(book)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "**")
	assert.NotContains(t, string(content), "*\n")
}

func TestDocumentExporter_ExportBook_TextFormat(t *testing.T) {
	dir := t.TempDir()
	exporter := NewDocumentExporter(dir, document.FormatText)
	exporter.Now = fixedClock

	filename, err := exporter.ExportBook(testBook())
	require.NoError(t, err)
	assert.Equal(t, "Book A_Highlights.txt", filename)

	content, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Kindle Highlights - Book A\n")
	assert.Contains(t, string(content), "\f\n")
}

func TestDocumentExporter_Export_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "highlights")
	exporter := NewDocumentExporter(dir, document.FormatMarkdown)
	exporter.Now = fixedClock

	result, err := exporter.Export([]clippings.Book{testBook()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.BooksProcessed)
	assert.Equal(t, 2, result.HighlightsProcessed)
	assert.Equal(t, 0, result.BooksFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocumentExporter_Export_OneDocumentPerBook(t *testing.T) {
	dir := t.TempDir()
	exporter := NewDocumentExporter(dir, document.FormatMarkdown)
	exporter.Now = fixedClock

	books := []clippings.Book{
		testBook(),
		{Title: "Book B", Highlights: []clippings.Highlight{{BookInfo: "Book B", Text: "x"}}},
	}

	result, err := exporter.Export(books)
	require.NoError(t, err)
	assert.Equal(t, 2, result.BooksProcessed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDocumentExporter_Export_ContinuesAfterBookFailure(t *testing.T) {
	dir := t.TempDir()
	exporter := NewDocumentExporter(dir, document.FormatMarkdown)
	exporter.Now = fixedClock

	// A directory squatting on the first book's target path makes its
	// save fail while the second book still goes through.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Doomed_Highlights.md"), 0755))

	books := []clippings.Book{
		{Title: "Doomed", Highlights: []clippings.Highlight{{BookInfo: "Doomed", Text: "a"}}},
		{Title: "Survivor", Highlights: []clippings.Highlight{{BookInfo: "Survivor", Text: "b"}}},
	}

	result, err := exporter.Export(books)
	require.NoError(t, err)
	assert.Equal(t, 1, result.BooksProcessed)
	assert.Equal(t, 1, result.BooksFailed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Doomed", result.Failures[0].Title)

	_, err = os.Stat(filepath.Join(dir, "Survivor_Highlights.md"))
	assert.NoError(t, err)
}
