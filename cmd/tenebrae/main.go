package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lawnchairsociety/tenebrae/internal/config"
	"github.com/lawnchairsociety/tenebrae/internal/content"
	"github.com/lawnchairsociety/tenebrae/internal/database"
	"github.com/lawnchairsociety/tenebrae/internal/logger"
	"github.com/lawnchairsociety/tenebrae/internal/render"
	"github.com/lawnchairsociety/tenebrae/internal/server"
	"github.com/lawnchairsociety/tenebrae/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/tenebrae.yaml", "Path to config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	contentDir := flag.String("content", "", "Directory with replacement content files (default: built-in story)")
	serve := flag.Bool("serve", false, "Serve games over telnet and WebSocket instead of the console")
	history := flag.Int("history", 0, "Print the N most recent recorded sessions and exit")
	flag.Parse()

	// A missing .env is normal; the environment may be set directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	// Initialize logger first (before any logging)
	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		log.Fatalf("Failed to load logging config: %v", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}

	var db *database.Database
	if cfg.Records.Enabled || *history > 0 {
		db, err = database.OpenWithConfig(cfg.Records)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
	}

	if *history > 0 {
		if err := printHistory(context.Background(), os.Stdout, db, *history); err != nil {
			log.Fatalf("Failed to read session history: %v", err)
		}
		return
	}

	bundle, err := content.Load(cfg.Content.Dir)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	opts := session.Options{Content: bundle}
	if cfg.Records.Enabled {
		opts.Recorder = db
	}

	if *serve {
		logger.Info("Starting Tenebrae server")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts.Renderer = render.New(cfg.Display.Width, cfg.Display.Color)
		srv := server.New(cfg.Server, opts)
		if err := srv.ListenAndServe(ctx); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		logger.Info("Server stopped")
		return
	}

	color := cfg.Display.Color && isatty.IsTerminal(os.Stdout.Fd())
	opts.Renderer = render.New(cfg.Display.Width, color)
	opts.Transport = "console"

	client := session.NewStreamClient(os.Stdin, os.Stdout)
	// Ctrl-C still kills the process here; stdin reads cannot be interrupted.
	if err := session.RunMenu(context.Background(), client, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
