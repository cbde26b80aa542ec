package clippings

import (
	"regexp"
	"strings"
)

// chunkSeparator is the line the Kindle writes between clippings.
const chunkSeparator = "=========="

// addedOnMarker introduces the "added on" date in the metadata line.
// Everything from the marker onward is dropped, keeping only the
// page/position portion.
const addedOnMarker = "| Adicionado:"

var (
	// Author/source annotations: "Book Title (Author Name)".
	// A "(" without a matching ")" never matches and stays literal.
	parenPattern = regexp.MustCompile(`\([^)]*\)`)

	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Highlight is a single clipping taken from one separator-delimited chunk.
type Highlight struct {
	BookInfo string // first line of the chunk, as written by the device
	Metadata string // page/position portion of the second line
	Text     string // the highlighted passage, may span multiple lines
}

// Book groups the highlights that share a derived title, in the order
// they appear in the clippings file.
type Book struct {
	Title      string
	Highlights []Highlight
}

// skipReason explains why a chunk produced no highlight. An empty reason
// means the chunk parsed successfully.
type skipReason string

const (
	skipNone       skipReason = ""
	skipEmptyChunk skipReason = "empty chunk"
	skipNoBookInfo skipReason = "missing book info line"
	skipNoText     skipReason = "missing highlight text"
)

// Parser parses the Kindle "My Clippings.txt" export format.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse splits raw clippings content into per-book highlight groups.
// Books are returned in first-seen order; within a book, highlights keep
// their order of appearance. Malformed chunks are skipped silently.
func (p *Parser) Parse(raw string) []Book {
	// Kindle exports use CRLF line endings.
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	bookMap := make(map[string]*Book)
	var bookOrder []string

	for _, chunk := range strings.Split(raw, chunkSeparator) {
		highlight, reason := parseChunk(chunk)
		if reason != skipNone {
			continue
		}

		title := ExtractBookTitle(highlight.BookInfo)

		book, exists := bookMap[title]
		if !exists {
			book = &Book{Title: title}
			bookMap[title] = book
			bookOrder = append(bookOrder, title)
		}
		book.Highlights = append(book.Highlights, highlight)
	}

	books := make([]Book, 0, len(bookOrder))
	for _, title := range bookOrder {
		books = append(books, *bookMap[title])
	}
	return books
}

// parseChunk extracts the three positional fields from one chunk:
// line 0 is the book info, line 1 the metadata, lines 2+ the text.
func parseChunk(chunk string) (Highlight, skipReason) {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return Highlight{}, skipEmptyChunk
	}

	lines := strings.Split(chunk, "\n")

	bookInfo := strings.TrimSpace(lines[0])
	if bookInfo == "" {
		return Highlight{}, skipNoBookInfo
	}

	var metadata string
	if len(lines) > 1 {
		metadata = TrimMetadata(strings.TrimSpace(lines[1]))
	}

	var text string
	if len(lines) > 2 {
		text = strings.TrimSpace(strings.Join(lines[2:], "\n"))
	}
	if text == "" {
		return Highlight{}, skipNoText
	}

	return Highlight{
		BookInfo: bookInfo,
		Metadata: metadata,
		Text:     text,
	}, skipNone
}

// TrimMetadata drops the "added on" date portion of a metadata line,
// keeping only what precedes the first marker occurrence.
func TrimMetadata(metadata string) string {
	if idx := strings.Index(metadata, addedOnMarker); idx != -1 {
		return strings.TrimSpace(metadata[:idx])
	}
	return metadata
}

// ExtractBookTitle derives the grouping title from a book info line by
// removing parenthesized annotations and normalizing whitespace.
// Deriving a title from an already-derived title returns it unchanged.
func ExtractBookTitle(bookInfo string) string {
	title := parenPattern.ReplaceAllString(bookInfo, "")
	title = whitespaceRuns.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// TotalHighlights sums highlight counts across books.
func TotalHighlights(books []Book) int {
	total := 0
	for _, book := range books {
		total += len(book.Highlights)
	}
	return total
}
