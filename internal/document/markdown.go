package document

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownBuilder renders the document as Markdown.
type MarkdownBuilder struct {
	buf strings.Builder
}

func (b *MarkdownBuilder) Heading(level int, text string) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	fmt.Fprintf(&b.buf, "%s %s\n\n", strings.Repeat("#", level), text)
}

func (b *MarkdownBuilder) Paragraph(text string, italic bool) {
	if italic {
		fmt.Fprintf(&b.buf, "*%s*\n\n", text)
		return
	}
	fmt.Fprintf(&b.buf, "%s\n\n", text)
}

func (b *MarkdownBuilder) PageBreak() {
	b.buf.WriteString("---\n\n")
}

func (b *MarkdownBuilder) Extension() string {
	return "md"
}

func (b *MarkdownBuilder) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.buf.String())
	return int64(n), err
}
