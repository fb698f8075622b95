package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/terrain/internal/api"
	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/player"
	"github.com/VoidMesh/terrain/internal/terrain"
)

const journalBuffer = 64

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	setupLogging(cfg.Logging)
	logger := logging.NewDefaultLogger()
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	// Initialize database
	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	journal := db.NewJournal(database, journalBuffer, logger)

	// Initialize terrain session
	log.Debug("Initializing terrain service", "seed", cfg.Terrain.Seed, "map_width", cfg.Terrain.MapWidth, "map_height", cfg.Terrain.MapHeight)
	service, err := terrain.NewService(cfg.Terrain, logger, journal)
	if err != nil {
		log.Fatal("Failed to initialize terrain service", "error", err)
	}

	tracker := player.NewTracker(grid.Vec2{X: cfg.Terrain.OriginX, Y: cfg.Terrain.OriginY}, logger)

	report, err := service.Generate(tracker.Position())
	if err != nil {
		log.Fatal("Failed to generate initial terrain", "error", err)
	}
	b := report.Bounds
	logging.WithBounds(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y).Info("Initial terrain ready",
		"seed", report.Seed, "clusters", report.Clusters, "vegetation", report.Vegetation, "duration", report.Duration)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := journal.StartSession(ctx, report, service.Config().TileSize); err != nil {
		log.Error("Failed to start journal session, expansions will not be recorded", "error", err)
	}

	// Start background services
	go journal.Run(ctx)
	go startBackgroundServices(ctx, cfg.Server.TickInterval, service, tracker)
	log.Debug("Background services started", "tick_interval", cfg.Server.TickInterval)

	// Initialize API handlers
	handler := api.NewHandler(service, logger)
	playerHandlers := player.NewPlayerHandlers(tracker, service, logger)
	router := api.SetupRoutes(handler, playerHandlers)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting VoidMesh terrain server", "port", cfg.Server.Port, "seed", service.Seed())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	cancel()
	journal.Close()
	journal.Wait()

	log.Info("Server exited", "expansions", service.Stats().Expansions)
}

func setupLogging(cfg config.LoggingConfig) {
	logging.InitLoggerWithOutput(os.Stderr, logging.ParseLevel(cfg.Level))
	logger := logging.GetLogger()

	if cfg.Format == "json" && cfg.Structured {
		logger.SetFormatter(log.JSONFormatter)
	}

	// Packages that log through the charmbracelet default logger share the same setup.
	log.SetDefault(logger)
}

// startBackgroundServices drives terrain streaming from the player's last reported position.
func startBackgroundServices(ctx context.Context, interval time.Duration, service *terrain.Service, tracker *player.Tracker) {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	statsTicker := time.NewTicker(time.Minute)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Background services stopped")
			return

		case <-ticker.C:
			service.Tick(tracker.Position())

		case <-statsTicker.C:
			stats := service.Stats()
			log.Debug("Terrain stats",
				"bounds", stats.Bounds.String(), "expansions", stats.Expansions,
				"grass_cells", stats.GrassCells, "water_cells", stats.WaterCells, "vegetation", stats.Vegetation)
		}
	}
}
