// Command vocab-server serves the word-lookup API (/api/translate,
// /api/analyze-word), the vocabulary catalog (/api/vocabulary), stories
// (/api/stories) and health checks over HTTP.
//
// Configuration comes from CONFIG_PATH (YAML) and the environment; see
// internal/config. SIGINT or SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/heartmarshall/myenglish-progress/internal/app"
	"github.com/heartmarshall/myenglish-progress/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (overrides CONFIG_PATH)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.BuildVersion())
		return
	}

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = a.Serve(ctx, cfg)
	if cerr := a.Close(); cerr != nil {
		logger.Warn("close", slog.String("error", cerr.Error()))
	}
	if err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
