// Package document provides a minimal rich-document builder used by the
// exporters. Backends implement headings, paragraphs and page breaks for
// a concrete output format so the rendering logic stays format-agnostic.
package document

import (
	"fmt"
	"io"
)

// Format selects a document backend.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Builder assembles a document out of headings, paragraphs and page
// breaks, then serializes it via WriteTo.
type Builder interface {
	// Heading appends a heading at the given level (1 is top-level).
	Heading(level int, text string)
	// Paragraph appends a paragraph, optionally italicized.
	Paragraph(text string, italic bool)
	// PageBreak appends a page break.
	PageBreak()
	// Extension returns the file extension for the format, without dot.
	Extension() string

	io.WriterTo
}

// NewBuilder returns a fresh builder for the given format.
func NewBuilder(format Format) (Builder, error) {
	switch format {
	case FormatMarkdown:
		return &MarkdownBuilder{}, nil
	case FormatText:
		return &TextBuilder{}, nil
	default:
		return nil, fmt.Errorf("unknown document format: %q", format)
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown document format: %q (supported: markdown, text)", name)
	}
}
