package entities

import (
	"time"
)

// Book is an archived book group. Title is the derived grouping title;
// BookInfo keeps the raw first line as the device wrote it.
type Book struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Title      string      `gorm:"uniqueIndex;size:512" json:"title"`
	BookInfo   string      `gorm:"size:1024" json:"book_info,omitempty"`
	Highlights []Highlight `gorm:"foreignKey:BookID" json:"highlights,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type Highlight struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	Text      string    `gorm:"type:text" json:"text"`
	Metadata  string    `gorm:"size:512" json:"metadata,omitempty"`
	Position  int       `gorm:"default:0" json:"position"` // order within the book
	CreatedAt time.Time `json:"created_at"`
}

// ExtractionRun records one extraction: where the clippings came from,
// where the documents went and how it ended.
type ExtractionRun struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Source              string     `gorm:"size:1024" json:"source"` // input path or "upload"
	OutputDir           string     `gorm:"size:1024" json:"output_dir"`
	Format              string     `gorm:"size:20" json:"format"`
	BooksFound          int        `json:"books_found"`
	BooksExported       int        `json:"books_exported"`
	BooksFailed         int        `json:"books_failed"`
	HighlightsProcessed int        `json:"highlights_processed"`
	Errors              string     `gorm:"type:text" json:"errors,omitempty"`
	StartedAt           time.Time  `json:"started_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

func (Highlight) TableName() string {
	return "highlights"
}

func (ExtractionRun) TableName() string {
	return "extraction_runs"
}
