package document

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TextBuilder renders the document as plain text. Top-level headings are
// underlined with "=", deeper ones with "-", and a page break is a form
// feed so paginating viewers honor it.
type TextBuilder struct {
	buf strings.Builder
}

func (b *TextBuilder) Heading(level int, text string) {
	underline := "-"
	if level <= 1 {
		underline = "="
	}
	width := utf8.RuneCountInString(text)
	if width == 0 {
		width = 1
	}
	fmt.Fprintf(&b.buf, "%s\n%s\n\n", text, strings.Repeat(underline, width))
}

func (b *TextBuilder) Paragraph(text string, italic bool) {
	// Plain text has no italics; the content is emitted as-is.
	fmt.Fprintf(&b.buf, "%s\n\n", text)
}

func (b *TextBuilder) PageBreak() {
	b.buf.WriteString("\f\n")
}

func (b *TextBuilder) Extension() string {
	return "txt"
}

func (b *TextBuilder) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.buf.String())
	return int64(n), err
}
