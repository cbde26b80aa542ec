package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipdoc/clipdoc/internal/config"
	"github.com/clipdoc/clipdoc/internal/database"
	"github.com/clipdoc/clipdoc/internal/document"
	"github.com/clipdoc/clipdoc/internal/exporters"
	"github.com/clipdoc/clipdoc/internal/scheduler"
	"github.com/clipdoc/clipdoc/internal/services"
)

// WatchCommand re-extracts the clippings file on a cron schedule until
// interrupted.
type WatchCommand struct {
	ClippingsPath string
	OutputDir     string
	Format        string
	DatabasePath  string
	Schedule      string
	Immediate     bool
}

func NewWatchCommand() *WatchCommand {
	return &WatchCommand{}
}

func (cmd *WatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", config.DefaultClippingsPath, "Path to Kindle 'My Clippings.txt' file")
	fs.StringVar(&cmd.OutputDir, "output", config.DefaultOutputDir, "Output directory for generated documents")
	fs.StringVar(&cmd.Format, "format", config.DefaultFormat, "Document format: markdown or text")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the archive database (empty disables archiving)")
	fs.StringVar(&cmd.Schedule, "schedule", "0 * * * *", "Cron schedule for re-extraction (five fields)")
	fs.BoolVar(&cmd.Immediate, "now", true, "Run one extraction immediately on start")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Re-extract the clippings file on a schedule until interrupted.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s watch -file \"/Volumes/Kindle/documents/My Clippings.txt\" -schedule \"*/15 * * * *\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := document.ParseFormat(cmd.Format); err != nil {
		return err
	}
	if err := scheduler.ValidateSchedule(cmd.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", cmd.Schedule, err)
	}

	return nil
}

func (cmd *WatchCommand) Run() error {
	var db *database.Database
	if cmd.DatabasePath != "" {
		var err error
		db, err = database.NewDatabase(cmd.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize archive database: %w", err)
		}
		defer db.Close()
	}

	format, _ := document.ParseFormat(cmd.Format)
	exporter := exporters.NewDocumentExporter(cmd.OutputDir, format)
	service := services.NewExtractService(exporter, db)

	sched := scheduler.NewExportScheduler(service, cmd.ClippingsPath, cmd.Schedule)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		return err
	}

	if cmd.Immediate {
		sched.RunNow()
	}

	fmt.Printf("Watching %s (schedule: %s). Press Ctrl+C to stop.\n", cmd.ClippingsPath, cmd.Schedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
