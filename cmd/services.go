package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/xvierd/doro/internal/adapters/audio"
	"github.com/xvierd/doro/internal/adapters/git"
	"github.com/xvierd/doro/internal/adapters/notification"
	"github.com/xvierd/doro/internal/adapters/storage"
	"github.com/xvierd/doro/internal/config"
	"github.com/xvierd/doro/internal/ports"
	"github.com/xvierd/doro/internal/services"
)

// logFileName lives next to the history database.
const logFileName = "doro.log"

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	storage  ports.Storage
	settings *services.SettingsService
	git      *git.Detector
	notifier *notification.Notifier
	logger   *log.Logger
	logFile  io.Closer
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	if configPath != "" {
		app.config, err = config.LoadFrom(configPath)
	} else {
		app.config, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Determine database path
	db := dbPath
	if db == "" {
		db = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	dbDir := getDir(db)
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// The orb owns the terminal, so logs go to a file next to the database.
	logPath := config.GetLogPath(app.config)
	if dbPath != "" {
		logPath = filepath.Join(dbDir, logFileName)
	}
	app.logger, app.logFile, err = openLogger(logPath, app.config.Log.Level)
	if err != nil {
		return err
	}

	// Initialize storage
	app.storage, err = storage.New(db)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications)
	app.git = git.NewDetector("")
	app.settings = services.NewSettingsService(app.config, config.FileStore{}, app.storage)

	app.logger.Debug("services initialized", "config", app.config.Path(), "db", db)
	return nil
}

// openLogger opens the log file for appending and builds a leveled logger on it.
func openLogger(path, level string) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "doro",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger, f, nil
}

// newOrb builds the orb service with a live alarm player.
func newOrb() (*services.OrbService, *audio.Player, error) {
	player := audio.NewPlayer(app.logger)
	orb, err := services.NewOrbService(app.settings, player, app.notifier, app.git, app.logger)
	if err != nil {
		return nil, nil, err
	}
	return orb, player, nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.storage != nil {
		err = app.storage.Close()
		app.storage = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
	return err
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
