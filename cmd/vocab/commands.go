package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/app"
	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/service/lookup"
	"github.com/heartmarshall/myenglish-progress/internal/service/progress"
)

type options struct {
	cmd        string
	wordID     string
	word       string
	difficulty string
	status     string
	capacity   int
	limit      int
	file       string
	context    string
	text       string
	id         string
	title      string
	level      string
	category   string
	search     string
	page       int
}

type command func(ctx context.Context, a *app.App, o options, in io.Reader, out io.Writer) error

var commands = map[string]command{
	"review":    cmdReview,
	"word":      cmdWord,
	"due":       cmdDue,
	"queue":     cmdQueue,
	"progress":  cmdProgress,
	"weak":      cmdWeak,
	"list":      cmdList,
	"stats":     cmdStats,
	"reset":     cmdReset,
	"export":    cmdExport,
	"import":    cmdImport,
	"analyze":   cmdAnalyze,
	"translate": cmdTranslate,

	"catalog":       cmdCatalog,
	"catalog-word":  cmdCatalogWord,
	"catalog-stats": cmdCatalogStats,
	"levels":        cmdLevels,
	"categories":    cmdCategories,
	"enrich":        cmdEnrich,
	"enroll":        cmdEnroll,

	"stories":      cmdStories,
	"story":        cmdStory,
	"story-add":    cmdStoryAdd,
	"story-update": cmdStoryUpdate,
	"story-delete": cmdStoryDelete,
}

func commandList() string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func run(ctx context.Context, a *app.App, o options, in io.Reader, out io.Writer) error {
	cmd, ok := commands[o.cmd]
	if !ok {
		return fmt.Errorf("unknown command %q (want one of: %s)", o.cmd, commandList())
	}
	return cmd(ctx, a, o, in, out)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdReview(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	now := a.Progress.Now()
	p, err := a.Progress.RecordReviewAt(ctx, progress.RecordReviewInput{
		WordID:     o.wordID,
		Word:       o.word,
		Difficulty: domain.Difficulty(strings.ToLower(o.difficulty)),
	}, now)
	if err != nil {
		return err
	}

	resp := struct {
		Progress   *domain.WordProgress      `json:"progress"`
		NextReview *progress.ReviewCountdown `json:"nextReviewIn,omitempty"`
	}{Progress: p}
	if p.NextReview != nil {
		c := progress.TimeUntilReview(*p.NextReview, now)
		resp.NextReview = &c
	}
	return writeJSON(out, resp)
}

func cmdWord(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	p, err := a.Progress.GetWord(ctx, o.wordID)
	if err != nil {
		return err
	}
	return writeJSON(out, p)
}

func cmdDue(ctx context.Context, a *app.App, _ options, _ io.Reader, out io.Writer) error {
	words, err := a.Progress.WordsDueForReview(ctx, a.Progress.Now())
	if err != nil {
		return err
	}
	return writeJSON(out, words)
}

func cmdQueue(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	words, err := a.Progress.RecommendedStudyQueue(ctx, a.Progress.Now(), o.capacity)
	if err != nil {
		return err
	}
	return writeJSON(out, struct {
		Count int                   `json:"count"`
		Words []domain.WordProgress `json:"words"`
	}{len(words), words})
}

func cmdProgress(ctx context.Context, a *app.App, _ options, _ io.Reader, out io.Writer) error {
	pct, err := a.Progress.OverallProgress(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, struct {
		OverallProgress int `json:"overallProgress"`
	}{pct})
}

func cmdWeak(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	words, err := a.Progress.WeakWords(ctx, o.limit)
	if err != nil {
		return err
	}
	return writeJSON(out, words)
}

func cmdList(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	words, err := a.Progress.WordsByStatus(ctx, domain.WordStatus(strings.ToLower(o.status)))
	if err != nil {
		return err
	}
	return writeJSON(out, words)
}

func cmdStats(ctx context.Context, a *app.App, _ options, _ io.Reader, out io.Writer) error {
	stats, err := a.Progress.ProgressStats(ctx, a.Progress.Now())
	if err != nil {
		return err
	}
	return writeJSON(out, stats)
}

func cmdReset(ctx context.Context, a *app.App, _ options, _ io.Reader, out io.Writer) error {
	if err := a.Progress.Reset(ctx); err != nil {
		return err
	}
	return writeJSON(out, struct {
		Reset bool `json:"reset"`
	}{true})
}

func cmdExport(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	if o.file == "" || o.file == "-" {
		return a.Progress.Export(ctx, out)
	}

	f, err := os.Create(o.file)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := a.Progress.Export(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func cmdImport(ctx context.Context, a *app.App, o options, in io.Reader, out io.Writer) error {
	r := in
	if o.file != "" && o.file != "-" {
		f, err := os.Open(o.file)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	n, err := a.Progress.Import(ctx, r)
	if err != nil {
		return err
	}
	return writeJSON(out, struct {
		Imported int `json:"imported"`
	}{n})
}

func cmdAnalyze(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	res, err := a.Lookup.AnalyzeWord(ctx, lookup.AnalyzeInput{
		Word:     o.word,
		Context:  o.context,
		FullText: o.text,
	})
	if err != nil {
		return err
	}
	return writeJSON(out, res)
}

func cmdTranslate(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	text, err := a.Lookup.Translate(ctx, lookup.TranslateInput{Text: o.text})
	if err != nil {
		return err
	}
	return writeJSON(out, struct {
		Translation string `json:"translation"`
	}{text})
}
