package clippings

import (
	"os"
	"strings"
	"testing"
)

func TestParser_Parse_MergesAuthorVariants(t *testing.T) {
	input := "Book A (Author)\nPage 1\nHello\n==========\nBook A\nPage 2\nWorld\n=========="

	parser := NewParser()
	books := parser.Parse(input)

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	book := books[0]
	if book.Title != "Book A" {
		t.Errorf("expected title 'Book A', got '%s'", book.Title)
	}
	if len(book.Highlights) != 2 {
		t.Fatalf("expected 2 highlights, got %d", len(book.Highlights))
	}
	if book.Highlights[0].Text != "Hello" {
		t.Errorf("expected first highlight 'Hello', got '%s'", book.Highlights[0].Text)
	}
	if book.Highlights[1].Text != "World" {
		t.Errorf("expected second highlight 'World', got '%s'", book.Highlights[1].Text)
	}
}

func TestParser_Parse_PreservesBookOrder(t *testing.T) {
	input := strings.Join([]string{
		"Book B\nPage 1\nfirst\n==========",
		"Book A\nPage 2\nsecond\n==========",
		"Book B\nPage 3\nthird\n==========",
	}, "\n")

	parser := NewParser()
	books := parser.Parse(input)

	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].Title != "Book B" || books[1].Title != "Book A" {
		t.Errorf("expected first-seen order [Book B, Book A], got [%s, %s]",
			books[0].Title, books[1].Title)
	}
	if len(books[0].Highlights) != 2 {
		t.Errorf("expected 2 highlights for Book B, got %d", len(books[0].Highlights))
	}
}

func TestParser_Parse_DropsChunkWithoutText(t *testing.T) {
	input := "Lonely Book (Someone)\n==========\nAnother Book\nPage 4\n\n=========="

	parser := NewParser()
	books := parser.Parse(input)

	if len(books) != 0 {
		t.Fatalf("expected 0 books, got %d", len(books))
	}
}

func TestParser_Parse_DropsChunkWithoutBookInfo(t *testing.T) {
	// The chunk between two adjacent separators starts with blank lines only.
	input := "\n\nsome stray text\n==========\nReal Book\nPage 1\nkept\n=========="

	parser := NewParser()
	books := parser.Parse(input)

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Real Book" {
		t.Errorf("expected 'Real Book', got '%s'", books[0].Title)
	}
}

func TestParser_Parse_EmptyMetadataLineIsValid(t *testing.T) {
	input := "Book C\n\nhighlight without metadata\n=========="

	parser := NewParser()
	books := parser.Parse(input)

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	h := books[0].Highlights[0]
	if h.Metadata != "" {
		t.Errorf("expected empty metadata, got '%s'", h.Metadata)
	}
	if h.Text != "highlight without metadata" {
		t.Errorf("unexpected text: %s", h.Text)
	}
}

func TestParser_Parse_MultiLineHighlight(t *testing.T) {
	input := "Book D (Author)\nPage 9\nline one\nline two\nline three\n=========="

	parser := NewParser()
	books := parser.Parse(input)

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	expected := "line one\nline two\nline three"
	if books[0].Highlights[0].Text != expected {
		t.Errorf("expected multiline text '%s', got '%s'", expected, books[0].Highlights[0].Text)
	}
}

func TestParser_Parse_CRLFInput(t *testing.T) {
	input := "Book E (Author)\r\nPage 3\r\ncarriage returns\r\n==========\r\n"

	parser := NewParser()
	books := parser.Parse(input)

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Highlights[0].Text != "carriage returns" {
		t.Errorf("unexpected text: %q", books[0].Highlights[0].Text)
	}
}

func TestParser_Parse_Fixture(t *testing.T) {
	content, err := os.ReadFile("testdata/sample_clippings.txt")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	parser := NewParser()
	books := parser.Parse(string(content))

	// The empty note chunk is dropped; the two Sapiens variants merge.
	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}

	if TotalHighlights(books) != 5 {
		t.Errorf("expected 5 highlights in total, got %d", TotalHighlights(books))
	}

	sapiens := books[1]
	if sapiens.Title != "Sapiens: Uma Breve História da Humanidade" {
		t.Fatalf("unexpected second book: %s", sapiens.Title)
	}
	if len(sapiens.Highlights) != 2 {
		t.Errorf("expected 2 highlights for Sapiens, got %d", len(sapiens.Highlights))
	}

	// Metadata keeps only the portion before the date marker.
	first := books[0].Highlights[0]
	if first.Metadata != "- Seu destaque na página 37 | posição 561-563" {
		t.Errorf("unexpected metadata: %q", first.Metadata)
	}
	if strings.Contains(first.Metadata, "Adicionado") {
		t.Errorf("metadata still contains date portion: %q", first.Metadata)
	}
}

func TestTrimMetadata(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Page 12 | Adicionado: 2024-01-01", "Page 12"},
		{"Page 12", "Page 12"},
		{"| Adicionado: 2024-01-01", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := TrimMetadata(tt.input)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestExtractBookTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Book A (Author)", "Book A"},
		{"Book A", "Book A"},
		{"Book  With   Spaces (Someone)", "Book With Spaces"},
		{"Title (Author) (Translator)", "Title"},
		// An unbalanced "(" is kept as literal text.
		{"Broken (Author", "Broken (Author"},
		{"Nested (outer (inner))", "Nested )"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ExtractBookTitle(tt.input)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestExtractBookTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"Book A (Author)",
		"Broken (Author",
		"Nested (outer (inner))",
		"  spaced   out  ",
	}

	for _, input := range inputs {
		once := ExtractBookTitle(input)
		twice := ExtractBookTitle(once)
		if once != twice {
			t.Errorf("derivation not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
