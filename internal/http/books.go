package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clipdoc/clipdoc/internal/database"
)

type BooksController struct {
	db *database.Database
}

func NewBooksController(db *database.Database) *BooksController {
	return &BooksController{db: db}
}

type BookSummary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	BookInfo       string `json:"book_info,omitempty"`
	HighlightCount int    `json:"highlight_count"`
}

// List returns the archived books with their highlight counts.
func (c *BooksController) List(ctx *gin.Context) {
	if c.db == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "archive database not configured"})
		return
	}

	books, err := c.db.GetAllBooks()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := make([]BookSummary, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, BookSummary{
			ID:             book.ID,
			Title:          book.Title,
			BookInfo:       book.BookInfo,
			HighlightCount: len(book.Highlights),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"books": summaries, "count": len(summaries)})
}
