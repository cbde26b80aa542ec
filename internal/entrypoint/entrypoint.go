package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clipdoc/clipdoc/internal/config"
	"github.com/clipdoc/clipdoc/internal/database"
	"github.com/clipdoc/clipdoc/internal/document"
	"github.com/clipdoc/clipdoc/internal/exporters"
	http_controllers "github.com/clipdoc/clipdoc/internal/http"
	"github.com/clipdoc/clipdoc/internal/scheduler"
	"github.com/clipdoc/clipdoc/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting clipdoc v%s", version)

	format, err := document.ParseFormat(cfg.Extract.Format)
	if err != nil {
		log.Fatalf("Invalid export format: %v", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize archive database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	exporter := exporters.NewDocumentExporter(cfg.Extract.OutputDir, format)
	service := services.NewExtractService(exporter, db)

	var sched *scheduler.ExportScheduler
	if cfg.Schedule.Enabled {
		sched = scheduler.NewExportScheduler(service, cfg.Extract.ClippingsPath, cfg.Schedule.Spec)
		if err := sched.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start export scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Service:  service,
		Database: db,
		Version:  version,
	})

	onShutdown := func(ctx context.Context) {
		if sched != nil {
			sched.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
