package main

import (
	"context"
	"io"
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/app"
	"github.com/heartmarshall/myenglish-progress/internal/service/catalog"
	"github.com/heartmarshall/myenglish-progress/internal/service/story"
)

func cmdCatalog(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	page, err := a.Catalog.ListWords(ctx, catalog.ListInput{
		Level:    o.level,
		Category: o.category,
		Search:   o.search,
		Page:     o.page,
		Limit:    o.limit,
	})
	if err != nil {
		return err
	}
	return writeJSON(out, page)
}

// cmdCatalogWord looks a word up by -word-id, or by -word when no id is given.
func cmdCatalogWord(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	if o.wordID == "" && o.word != "" {
		w, err := a.Catalog.GetWordByText(ctx, o.word)
		if err != nil {
			return err
		}
		return writeJSON(out, w)
	}

	w, err := a.Catalog.GetWord(ctx, o.wordID)
	if err != nil {
		return err
	}
	return writeJSON(out, w)
}

func cmdCatalogStats(ctx context.Context, a *app.App, _ options, _ io.Reader, out io.Writer) error {
	stats, err := a.Catalog.Stats(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, stats)
}

func cmdLevels(_ context.Context, a *app.App, _ options, _ io.Reader, out io.Writer) error {
	return writeJSON(out, a.Catalog.Levels())
}

func cmdCategories(ctx context.Context, a *app.App, _ options, _ io.Reader, out io.Writer) error {
	cats, err := a.Catalog.Categories(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, cats)
}

func cmdEnrich(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	res, err := a.Catalog.Enrich(ctx, o.word)
	if err != nil {
		return err
	}
	return writeJSON(out, res)
}

// cmdEnroll adds catalog words to the progress store. -word-id takes a
// comma separated list.
func cmdEnroll(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	var ids []string
	for id := range strings.SplitSeq(o.wordID, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	res, err := a.Catalog.Enroll(ctx, catalog.EnrollInput{IDs: ids})
	if err != nil {
		return err
	}
	return writeJSON(out, res)
}

func cmdStories(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	all, err := a.Stories.List(ctx, o.level)
	if err != nil {
		return err
	}
	return writeJSON(out, all)
}

func cmdStory(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	st, err := a.Stories.Get(ctx, o.id)
	if err != nil {
		return err
	}
	return writeJSON(out, st)
}

func cmdStoryAdd(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	st, err := a.Stories.Create(ctx, storyInput(o))
	if err != nil {
		return err
	}
	return writeJSON(out, st)
}

func cmdStoryUpdate(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	st, err := a.Stories.Update(ctx, o.id, storyInput(o))
	if err != nil {
		return err
	}
	return writeJSON(out, st)
}

func cmdStoryDelete(ctx context.Context, a *app.App, o options, _ io.Reader, out io.Writer) error {
	if err := a.Stories.Delete(ctx, o.id); err != nil {
		return err
	}
	return writeJSON(out, struct {
		Deleted string `json:"deleted"`
	}{o.id})
}

func storyInput(o options) story.Input {
	return story.Input{Title: o.title, Level: o.level, Text: o.text}
}
