// Package main initializes and starts the portfolio server, setting up
// configuration, logging, the credentials database, the content store with
// its debounced write-back, and the HTTP router.
package main

import (
	"cmp"
	"fmt"
	"os"

	nethttp "net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rizkylsmp/portfolio-server/internal/config"
	"github.com/rizkylsmp/portfolio-server/internal/db"
	"github.com/rizkylsmp/portfolio-server/internal/logger"
	"github.com/rizkylsmp/portfolio-server/internal/models"
	"github.com/rizkylsmp/portfolio-server/internal/repository"
	"github.com/rizkylsmp/portfolio-server/internal/server/handler/http"
	"github.com/rizkylsmp/portfolio-server/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file, and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Open the local credentials database.
	credDB, err := db.InitSQLite(options.CredentialsDB)
	if err != nil {
		zapLogger.Fatal("cannot init credentials database", zap.Error(err))
	}

	credStore := repository.NewSQLCredentialStore(credDB)
	authService := service.NewAuthService(credStore)

	// Read the bundled portfolio snapshot.
	seed, err := os.ReadFile(options.DataFile)
	if err != nil {
		zapLogger.Fatal("cannot read portfolio data", zap.Error(err))
	}

	// In release mode edits stay in memory; in development mode each flush
	// rewrites the data file.
	var sink service.SnapshotSink = repository.NoopSnapshotSink{}
	if options.Dev() {
		sink = repository.NewFileSnapshotSink(options.DataFile, zapLogger)
	}

	// The flusher's snapshot source closes over the content service, which is
	// constructed right after with the flusher in hand.
	var contentService *service.ContentService
	flusher := service.NewFlusher(options.FlushDelay, sink, func() *models.Snapshot {
		return contentService.StrippedSnapshot()
	}, zapLogger)

	contentService, err = service.NewContentService(seed, flusher)
	if err != nil {
		zapLogger.Fatal("cannot init content store", zap.Error(err))
	}

	// Create HTTP handlers for the auth gate and the content API.
	authHandler := &http.AuthHandler{Auth: authService, Validate: validator.New()}
	contentHandler := &http.ContentHandler{Store: contentService}

	var saveHandler *http.SaveHandler
	if options.Dev() {
		saveHandler = &http.SaveHandler{Path: options.DataFile, Log: zapLogger}
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, contentHandler, saveHandler,
		authService, options.StaticDir, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.String("mode", options.Mode),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
