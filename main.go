package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/core"
	"github.com/status-im/coin-tracker/tui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to a YAML or TOML config file, empty for defaults")
	tuiMode := flag.Bool("tui", false, "run the terminal UI instead of serving the HTTP API")
	flag.Parse()

	// Load configuration
	path := *configPath
	if _, err := os.Stat(path); path == "config.yaml" && os.IsNotExist(err) {
		path = ""
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// The terminal UI owns stdout, so logs go to a file
	if *tuiMode {
		logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("Error opening log file:", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	app, err := core.Setup(ctx, cfg, core.Options{WithServer: !*tuiMode})
	if err != nil {
		log.Fatal("Failed to set up services:", err)
	}

	if err := app.Registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}
	defer app.Registry.StopAll()

	if !*tuiMode {
		log.Printf("Serving API on port %d", app.Server.Port())
		<-ctx.Done()
		return
	}

	err = tui.Run(tui.Options{
		Context:        ctx,
		CoinList:       app.CoinList,
		Details:        app.DetailManager,
		Theme:          app.Theme,
		ClearLocalData: app.ClearLocalData,
	})
	if err != nil {
		log.Printf("Terminal UI exited with error: %v", err)
	}
}
