// Package progress implements the progress store using PostgreSQL.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/myenglish-progress/internal/adapter/postgres"
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

// Repo provides progress persistence backed by PostgreSQL. Calls made with a
// context from postgres.TxManager.RunInTx run inside that transaction.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Words
// ---------------------------------------------------------------------------

// Get returns the record for wordID or an error wrapping domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, wordID string) (*domain.WordProgress, error) {
	query, args, err := postgres.Builder().
		Select(wordColumns...).
		From(wordTable).
		Where(squirrel.Eq{"word_id": wordID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	p, err := scanWord(row)
	if err != nil {
		return nil, postgres.MapError(err, "word", wordID)
	}
	return &p, nil
}

// Set upserts the full record.
func (r *Repo) Set(ctx context.Context, p domain.WordProgress) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query, args, err := postgres.Builder().
		Insert(wordTable).
		Columns(wordColumns...).
		Values(
			p.WordID, p.Word, string(p.Status), p.FirstSeen.UTC(), utcPtr(p.LastReviewed), utcPtr(p.NextReview),
			p.RecognitionScore, p.ReviewCount, p.CorrectCount, p.IncorrectCount, p.ConfidenceLevel,
		).
		Suffix(`ON CONFLICT (word_id) DO UPDATE SET
			word = EXCLUDED.word,
			status = EXCLUDED.status,
			first_seen = EXCLUDED.first_seen,
			last_reviewed = EXCLUDED.last_reviewed,
			next_review = EXCLUDED.next_review,
			recognition_score = EXCLUDED.recognition_score,
			review_count = EXCLUDED.review_count,
			correct_count = EXCLUDED.correct_count,
			incorrect_count = EXCLUDED.incorrect_count,
			confidence_level = EXCLUDED.confidence_level`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set word: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "word", p.WordID)
	}
	return nil
}

// List returns all records ordered by first_seen, then word_id.
func (r *Repo) List(ctx context.Context) ([]domain.WordProgress, error) {
	query, args, err := postgres.Builder().
		Select(wordColumns...).
		From(wordTable).
		OrderBy("first_seen ASC", "word_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	words := []domain.WordProgress{}
	for rows.Next() {
		p, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	return words, nil
}

// ---------------------------------------------------------------------------
// Learner / session stats
// ---------------------------------------------------------------------------

func (r *Repo) GetSessionStats(ctx context.Context) (domain.SessionStats, error) {
	query, args, err := postgres.Builder().
		Select("total_words_studied", "total_reviews", "current_streak", "last_study_date").
		From(learnerTable).
		Where(squirrel.Eq{"id": learnerRowID}).
		ToSql()
	if err != nil {
		return domain.SessionStats{}, fmt.Errorf("build get session stats: %w", err)
	}

	var (
		stats domain.SessionStats
		last  *time.Time
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&stats.TotalWordsStudied, &stats.TotalReviews, &stats.CurrentStreak, &last)
	if err != nil {
		return domain.SessionStats{}, postgres.MapError(err, "learner", "stats")
	}
	stats.LastStudyDate = utcPtr(last)
	return stats, nil
}

func (r *Repo) SetSessionStats(ctx context.Context, stats domain.SessionStats) error {
	query, args, err := postgres.Builder().
		Update(learnerTable).
		Set("total_words_studied", stats.TotalWordsStudied).
		Set("total_reviews", stats.TotalReviews).
		Set("current_streak", stats.CurrentStreak).
		Set("last_study_date", utcPtr(stats.LastStudyDate)).
		Where(squirrel.Eq{"id": learnerRowID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set session stats: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "learner", "stats")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("learner row missing: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) LearnerID(ctx context.Context) (string, error) {
	query, args, err := postgres.Builder().
		Select("learner_id").
		From(learnerTable).
		Where(squirrel.Eq{"id": learnerRowID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build get learner id: %w", err)
	}

	var id string
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", postgres.MapError(err, "learner", "id")
	}
	return id, nil
}

// Clear deletes all words and zeroes the stats. The learner ID is kept.
// Outside a transaction the two statements are not atomic.
func (r *Repo) Clear(ctx context.Context) error {
	query, args, err := postgres.Builder().Delete(wordTable).ToSql()
	if err != nil {
		return fmt.Errorf("build clear words: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	return r.SetSessionStats(ctx, domain.SessionStats{})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanWord(row pgx.Row) (domain.WordProgress, error) {
	var (
		p      domain.WordProgress
		status string
	)
	err := row.Scan(
		&p.WordID, &p.Word, &status, &p.FirstSeen, &p.LastReviewed, &p.NextReview,
		&p.RecognitionScore, &p.ReviewCount, &p.CorrectCount, &p.IncorrectCount, &p.ConfidenceLevel,
	)
	if err != nil {
		return domain.WordProgress{}, err
	}

	p.Status = domain.WordStatus(status)
	p.FirstSeen = p.FirstSeen.UTC()
	p.LastReviewed = utcPtr(p.LastReviewed)
	p.NextReview = utcPtr(p.NextReview)
	return p, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
