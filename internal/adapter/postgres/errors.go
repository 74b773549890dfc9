package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// validationCodes are SQLSTATEs raised when a row breaks the schema. The
// progress tables encode status, difficulty and score ranges as CHECKs.
var validationCodes = map[string]string{
	"23502": "not null violation",
	"23514": "check violation",
	"22001": "value too long",
	"22P02": "invalid text representation",
}

// MapError wraps a pgx error with the entity it concerns, translating
// missing rows to domain.ErrNotFound and schema violations to
// domain.ErrValidation. Context errors keep their identity.
func MapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s %s: %w", entity, id, err)
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := validationCodes[pgErr.Code]; ok {
			detail := pgErr.ConstraintName
			if detail == "" {
				detail = pgErr.ColumnName
			}
			return fmt.Errorf("%s %s: %s %s: %w", entity, id, kind, detail, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
