// Command vocab records vocabulary reviews and queries study progress from
// the command line. Results are printed to stdout as JSON; logs go to stderr.
//
// Usage:
//
//	vocab -cmd review -word-id w42 -word ephemeral -difficulty easy
//	vocab -cmd queue -capacity 15
//	vocab -cmd analyze -word gleaming -context "A gleaming blade."
//	vocab -cmd export -file backup.json
//	vocab -cmd catalog -level B2 -search aban
//	vocab -cmd enroll -word-id ox-1,ox-2
//	vocab -cmd story-add -title Harbour -level B1 -text "Ships left at dawn."
//
// Story commands write directly to the story file and need no admin token.
//
// Exit codes: 0 = success, 1 = error.
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
	"github.com/heartmarshall/myenglish-progress/pkg/ctxutil"
)

func main() {
	var opts options
	flag.StringVar(&opts.cmd, "cmd", "", "command: "+commandList())
	flag.StringVar(&opts.wordID, "word-id", "", "word identifier (review, word, catalog-word); comma separated for enroll")
	flag.StringVar(&opts.word, "word", "", "surface form of the word (review, analyze, catalog-word, enrich)")
	flag.StringVar(&opts.difficulty, "difficulty", "", "review rating: hard, medium or easy")
	flag.StringVar(&opts.status, "status", "", "word status filter (list): new, learning, reviewing, mastered")
	flag.IntVar(&opts.capacity, "capacity", 0, "study queue size (0 = configured default)")
	flag.IntVar(&opts.limit, "limit", 0, "number of weak words, or catalog page size (0 = default)")
	flag.StringVar(&opts.file, "file", "", "export/import file (default stdout/stdin)")
	flag.StringVar(&opts.context, "context", "", "sentence the word appeared in (analyze)")
	flag.StringVar(&opts.text, "text", "", "full text to search for the sentence (analyze), to translate (translate) or story body")
	flag.StringVar(&opts.id, "id", "", "story identifier (story, story-update, story-delete)")
	flag.StringVar(&opts.title, "title", "", "story title (story-add, story-update)")
	flag.StringVar(&opts.level, "level", "", "CEFR level A1..C2 (catalog, stories, story-add, story-update)")
	flag.StringVar(&opts.category, "category", "", "catalog category filter")
	flag.StringVar(&opts.search, "search", "", "catalog word search")
	flag.IntVar(&opts.page, "page", 0, "catalog page, starting at 1 (0 = first)")
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
	ctx = ctxutil.WithRequestID(ctx, ctxutil.NewRequestID())

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = run(ctx, a, opts, os.Stdin, os.Stdout)
	if cerr := a.Close(); cerr != nil {
		logger.WarnContext(ctx, "close", slog.String("error", cerr.Error()))
	}
	if err != nil {
		logger.ErrorContext(ctx, "command failed", slog.String("cmd", opts.cmd), slog.String("error", err.Error()))
		os.Exit(1)
	}
}
