package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/clipdoc/clipdoc/internal/services"
)

// ExportScheduler re-runs the extraction on a cron schedule, for a
// clippings file that keeps growing while the device stays mounted.
// Every run is a full re-extraction; documents are rewritten from
// scratch.
type ExportScheduler struct {
	service       *services.ExtractService
	clippingsPath string
	schedule      string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewExportScheduler(service *services.ExtractService, clippingsPath, schedule string) *ExportScheduler {
	return &ExportScheduler{
		service:       service,
		clippingsPath: clippingsPath,
		schedule:      schedule,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	return err
}

// Start begins periodic extraction and stops it when ctx is cancelled.
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runExtract()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule extraction job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	if next := s.nextRunLocked(); next != nil {
		log.Printf("Export scheduler: started with schedule '%s'. Next run: %v", s.schedule, next)
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running extraction to finish before returning.
func (s *ExportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	log.Printf("Export scheduler: stopped")
}

// RunNow triggers an immediate extraction.
func (s *ExportScheduler) RunNow() {
	go s.runExtract()
}

func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next extraction will occur.
func (s *ExportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *ExportScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ExportScheduler) runExtract() {
	log.Printf("Scheduled extraction: starting for %s", s.clippingsPath)
	startTime := time.Now()

	result, err := s.service.ExtractFile(s.clippingsPath)
	if err != nil {
		log.Printf("Scheduled extraction: failed: %v", err)
		return
	}

	duration := time.Since(startTime)
	log.Printf("Scheduled extraction: exported %d books, %d highlights in %v (%d failed)",
		result.BooksExported, result.HighlightsProcessed, duration.Round(time.Millisecond), result.BooksFailed)
}
