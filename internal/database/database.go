// Package database is the optional SQLite archive of extracted
// highlights and run history. Extraction never depends on it; a nil
// *Database disables archiving.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clipdoc/clipdoc/internal/clippings"
	"github.com/clipdoc/clipdoc/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Highlight{},
		&entities.ExtractionRun{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Archive database initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveBook archives a parsed book. Re-extracting an already archived
// title replaces its highlights so the archive mirrors the latest
// clippings file.
func (d *Database) SaveBook(book clippings.Book) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		var record entities.Book
		err := tx.Where("title = ?", book.Title).First(&record).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			record = entities.Book{Title: book.Title}
			if len(book.Highlights) > 0 {
				record.BookInfo = book.Highlights[0].BookInfo
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create book %q: %w", book.Title, err)
			}
		case err != nil:
			return err
		default:
			if err := tx.Where("book_id = ?", record.ID).Delete(&entities.Highlight{}).Error; err != nil {
				return fmt.Errorf("failed to clear highlights for %q: %w", book.Title, err)
			}
		}

		for i, h := range book.Highlights {
			highlight := entities.Highlight{
				BookID:   record.ID,
				Text:     h.Text,
				Metadata: h.Metadata,
				Position: i + 1,
			}
			if err := tx.Create(&highlight).Error; err != nil {
				return fmt.Errorf("failed to save highlight for %q: %w", book.Title, err)
			}
		}
		return nil
	})
}

// GetAllBooks returns archived books with their highlights, ordered by
// archive insertion.
func (d *Database) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := d.DB.Preload("Highlights", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("id ASC").Find(&books).Error
	return books, err
}

func (d *Database) SaveRun(run *entities.ExtractionRun) error {
	return d.DB.Create(run).Error
}

// GetRecentRuns returns the most recent extraction runs, newest first.
func (d *Database) GetRecentRuns(limit int) ([]entities.ExtractionRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []entities.ExtractionRun
	err := d.DB.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
