package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipdoc/clipdoc/internal/clippings"
	"github.com/clipdoc/clipdoc/internal/config"
	"github.com/clipdoc/clipdoc/internal/database"
	"github.com/clipdoc/clipdoc/internal/document"
	"github.com/clipdoc/clipdoc/internal/exporters"
	"github.com/clipdoc/clipdoc/internal/services"
)

// ExtractCommand handles one-shot extraction of a Kindle
// "My Clippings.txt" export into per-book documents.
type ExtractCommand struct {
	ClippingsPath string
	OutputDir     string
	Format        string
	DatabasePath  string
	Verbose       bool
	DryRun        bool
}

func NewExtractCommand() *ExtractCommand {
	return &ExtractCommand{}
}

func (cmd *ExtractCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", config.DefaultClippingsPath, "Path to Kindle 'My Clippings.txt' file")
	fs.StringVar(&cmd.OutputDir, "output", config.DefaultOutputDir, "Output directory for generated documents (created if missing)")
	fs.StringVar(&cmd.Format, "format", config.DefaultFormat, "Document format: markdown or text")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the archive database (empty disables archiving)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be extracted without writing documents")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s extract [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extract Kindle highlights and create one document per book.\n\n")
		fmt.Fprintf(os.Stderr, "The clippings file is typically found at:\n")
		fmt.Fprintf(os.Stderr, "  /Volumes/Kindle/documents/My Clippings.txt\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Extract with defaults ('My Clippings.txt' into ./highlights):\n")
		fmt.Fprintf(os.Stderr, "  %s extract\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Extract from a connected Kindle, archive to a local database:\n")
		fmt.Fprintf(os.Stderr, "  %s extract -file \"/Volumes/Kindle/documents/My Clippings.txt\" -db %s\n\n", os.Args[0], config.DefaultDatabasePath)
		fmt.Fprintf(os.Stderr, "  # Preview what would be extracted:\n")
		fmt.Fprintf(os.Stderr, "  %s extract -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := document.ParseFormat(cmd.Format); err != nil {
		return err
	}

	return nil
}

func (cmd *ExtractCommand) Run() error {
	fmt.Println("Extracting highlights from all books...")
	fmt.Println("==================================================")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No documents will be written")
		fmt.Println()
	}

	if _, err := os.Stat(cmd.ClippingsPath); os.IsNotExist(err) {
		return fmt.Errorf("clippings file not found: %s", cmd.ClippingsPath)
	}

	fmt.Printf("File: %s\n", cmd.ClippingsPath)

	if cmd.DryRun {
		return cmd.runDry()
	}

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	cmd.OutputDir = absOutputDir

	var db *database.Database
	if cmd.DatabasePath != "" {
		absDBPath, err := filepath.Abs(cmd.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		db, err = database.NewDatabase(absDBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize archive database: %w", err)
		}
		defer db.Close()
	}

	format, _ := document.ParseFormat(cmd.Format)
	exporter := exporters.NewDocumentExporter(cmd.OutputDir, format)
	service := services.NewExtractService(exporter, db)

	result, err := service.ExtractFile(cmd.ClippingsPath)
	if err != nil {
		return err
	}

	if result.BooksFound == 0 {
		fmt.Println("No highlights found.")
		return nil
	}

	if cmd.Verbose && len(result.Failures) > 0 {
		fmt.Println("\n=== Failed Books ===")
		for _, failure := range result.Failures {
			fmt.Printf("  [ERROR] %s: %s\n", failure.Title, failure.Err)
		}
	}

	fmt.Println("--------------------------------------------------")
	fmt.Println("Summary:")
	fmt.Printf("  %d documents created successfully\n", result.BooksExported)
	if result.BooksFailed > 0 {
		fmt.Printf("  %d documents failed\n", result.BooksFailed)
	}
	fmt.Printf("  %d total highlights processed\n", result.HighlightsProcessed)
	fmt.Printf("  Files saved in: %s/\n", cmd.OutputDir)

	return nil
}

// runDry parses and reports without touching the output directory.
func (cmd *ExtractCommand) runDry() error {
	content, err := os.ReadFile(cmd.ClippingsPath)
	if err != nil {
		return fmt.Errorf("failed to read clippings file: %w", err)
	}

	books := clippings.NewParser().Parse(string(content))
	if len(books) == 0 {
		fmt.Println("No highlights found.")
		return nil
	}

	fmt.Printf("Found %d books with %d total highlights\n", len(books), clippings.TotalHighlights(books))

	if cmd.Verbose {
		fmt.Println("\n=== Books Found ===")
		for i, book := range books {
			fmt.Printf("%d. %q (%d highlights)\n", i+1, book.Title, len(book.Highlights))
		}
	}

	fmt.Println("\nDry run complete. Use without -dry-run to write documents.")
	return nil
}
