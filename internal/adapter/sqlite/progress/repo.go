// Package progress implements the progress store using SQLite.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/heartmarshall/myenglish-progress/internal/adapter/sqlite"
	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

const (
	wordTable    = "word_progress"
	learnerTable = "learner"
	learnerRowID = 1
)

var wordColumns = []string{
	"word_id", "word", "status", "first_seen", "last_reviewed", "next_review",
	"recognition_score", "review_count", "correct_count", "incorrect_count", "confidence_level",
}

type wordRow struct {
	WordID           string       `db:"word_id"`
	Word             string       `db:"word"`
	Status           string       `db:"status"`
	FirstSeen        time.Time    `db:"first_seen"`
	LastReviewed     sql.NullTime `db:"last_reviewed"`
	NextReview       sql.NullTime `db:"next_review"`
	RecognitionScore int          `db:"recognition_score"`
	ReviewCount      int          `db:"review_count"`
	CorrectCount     int          `db:"correct_count"`
	IncorrectCount   int          `db:"incorrect_count"`
	ConfidenceLevel  int          `db:"confidence_level"`
}

type statsRow struct {
	TotalWordsStudied int          `db:"total_words_studied"`
	TotalReviews      int          `db:"total_reviews"`
	CurrentStreak     int          `db:"current_streak"`
	LastStudyDate     sql.NullTime `db:"last_study_date"`
}

// Repo provides progress persistence backed by SQLite.
type Repo struct {
	db *sqlx.DB
}

// New creates a new progress repository.
func New(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, wordID string) (*domain.WordProgress, error) {
	query, args, err := squirrel.Select(wordColumns...).
		From(wordTable).
		Where(squirrel.Eq{"word_id": wordID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word: %w", err)
	}

	var row wordRow
	if err := sqlx.GetContext(ctx, sqlite.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("word %s: %w", wordID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get word %s: %w", wordID, err)
	}

	p := row.toDomain()
	return &p, nil
}

// Set replaces the full record.
func (r *Repo) Set(ctx context.Context, p domain.WordProgress) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query, args, err := squirrel.Insert(wordTable).
		Options("OR REPLACE").
		Columns(wordColumns...).
		Values(
			p.WordID, p.Word, string(p.Status), p.FirstSeen.UTC(), nullTime(p.LastReviewed), nullTime(p.NextReview),
			p.RecognitionScore, p.ReviewCount, p.CorrectCount, p.IncorrectCount, p.ConfidenceLevel,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set word: %w", err)
	}

	if _, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set word %s: %w", p.WordID, err)
	}
	return nil
}

// List returns all records ordered by first_seen, then word_id.
func (r *Repo) List(ctx context.Context) ([]domain.WordProgress, error) {
	query, args, err := squirrel.Select(wordColumns...).
		From(wordTable).
		OrderBy("first_seen ASC", "word_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words: %w", err)
	}

	var rows []wordRow
	if err := sqlx.SelectContext(ctx, sqlite.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	words := make([]domain.WordProgress, 0, len(rows))
	for _, row := range rows {
		words = append(words, row.toDomain())
	}
	return words, nil
}

func (r *Repo) GetSessionStats(ctx context.Context) (domain.SessionStats, error) {
	query, args, err := squirrel.Select("total_words_studied", "total_reviews", "current_streak", "last_study_date").
		From(learnerTable).
		Where(squirrel.Eq{"id": learnerRowID}).
		ToSql()
	if err != nil {
		return domain.SessionStats{}, fmt.Errorf("build get session stats: %w", err)
	}

	var row statsRow
	if err := sqlx.GetContext(ctx, sqlite.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.SessionStats{}, fmt.Errorf("get session stats: %w", err)
	}

	return domain.SessionStats{
		TotalWordsStudied: row.TotalWordsStudied,
		TotalReviews:      row.TotalReviews,
		CurrentStreak:     row.CurrentStreak,
		LastStudyDate:     timePtr(row.LastStudyDate),
	}, nil
}

func (r *Repo) SetSessionStats(ctx context.Context, stats domain.SessionStats) error {
	query, args, err := squirrel.Update(learnerTable).
		Set("total_words_studied", stats.TotalWordsStudied).
		Set("total_reviews", stats.TotalReviews).
		Set("current_streak", stats.CurrentStreak).
		Set("last_study_date", nullTime(stats.LastStudyDate)).
		Where(squirrel.Eq{"id": learnerRowID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set session stats: %w", err)
	}

	res, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set session stats: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("learner row missing: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) LearnerID(ctx context.Context) (string, error) {
	var id string
	err := sqlx.GetContext(ctx, sqlite.QuerierFromCtx(ctx, r.db), &id,
		`SELECT learner_id FROM learner WHERE id = ?`, learnerRowID)
	if err != nil {
		return "", fmt.Errorf("get learner id: %w", err)
	}
	return id, nil
}

// Clear deletes all words and zeroes the stats. The learner ID is kept.
func (r *Repo) Clear(ctx context.Context) error {
	if _, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, `DELETE FROM word_progress`); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	return r.SetSessionStats(ctx, domain.SessionStats{})
}

func (row wordRow) toDomain() domain.WordProgress {
	return domain.WordProgress{
		WordID:           row.WordID,
		Word:             row.Word,
		Status:           domain.WordStatus(row.Status),
		FirstSeen:        row.FirstSeen.UTC(),
		LastReviewed:     timePtr(row.LastReviewed),
		NextReview:       timePtr(row.NextReview),
		RecognitionScore: row.RecognitionScore,
		ReviewCount:      row.ReviewCount,
		CorrectCount:     row.CorrectCount,
		IncorrectCount:   row.IncorrectCount,
		ConfidenceLevel:  row.ConfidenceLevel,
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}
