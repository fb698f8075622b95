package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/terrain/cmd/debug/models"
	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/player"
	"github.com/VoidMesh/terrain/internal/terrain"
)

func main() {
	dbPath := flag.String("db", "./terrain-debug.db", "Path to the SQLite journal database")
	startView := flag.String("view", "map", "Starting view (menu, map, overview, journal)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "Terrain seed (0 picks a time-based seed)")
	flag.Parse()

	// The TUI owns the terminal, so logs only go to a file when DEBUG is set.
	var logOutput io.Writer = io.Discard
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOutput = f
	}
	logging.InitLoggerWithOutput(logOutput, logging.ParseLevel(*logLevel))
	log.SetDefault(logging.GetLogger())
	logger := logging.NewDefaultLogger()

	cfg := config.Load()
	if *seed != 0 {
		cfg.Terrain = cfg.Terrain.WithSeed(*seed)
	}
	cfg.Database.Path = *dbPath

	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", "error", err, "path", *dbPath)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	journal := db.NewJournal(database, 256, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go journal.Run(ctx)

	service, err := terrain.NewService(cfg.Terrain, logger, journal)
	if err != nil {
		log.Fatal("Failed to initialize terrain service", "error", err)
	}

	tracker := player.NewTracker(grid.Vec2{X: cfg.Terrain.OriginX, Y: cfg.Terrain.OriginY}, logger)
	report, err := service.Generate(tracker.Position())
	if err != nil {
		log.Fatal("Failed to generate terrain", "error", err)
	}
	if _, err := journal.StartSession(ctx, report, service.Config().TileSize); err != nil {
		log.Error("Failed to start journal session", "error", err)
	}

	app := models.NewApp(service, tracker, journal, *startView)
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting VoidMesh Terrain Debug Tool", "db_path", *dbPath, "start_view", *startView, "seed", service.Seed())

	if _, err := program.Run(); err != nil {
		log.Fatal("Error running debug tool", "error", err)
	}

	journal.Close()
	journal.Wait()
}
