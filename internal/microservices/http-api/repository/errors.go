package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bookhub/internal/search"
	"bookhub/internal/shared"
)

// ErrDuplicateEntry wraps unique-constraint violations; the constraint name follows the colon.
var ErrDuplicateEntry = errors.New("duplicate entry")

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// ErrMissingReference is returned when a foreign key points at no row.
var ErrMissingReference = errors.New("missing reference")

// translate maps driver and gorm errors onto the error taxonomy.
func translate(err error, kind shared.Kind, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFound(kind, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", ErrMissingReference, pgErr.ConstraintName)
		}
	}
	return err
}

// list runs a composed query twice: once for the total, once for the page.
func list[T any](ctx context.Context, db *gorm.DB, q search.Query) ([]T, int64, error) {
	total, err := q.Count(db.WithContext(ctx).Model(new(T)))
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", q.Kind, err)
	}

	rows := make([]T, 0)
	if err := q.Apply(db.WithContext(ctx).Model(new(T))).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", q.Kind, err)
	}
	return rows, total, nil
}

// mustAffect turns a zero-row write into NotFound.
func mustAffect(res *gorm.DB, kind shared.Kind, id any) error {
	if res.Error != nil {
		return translate(res.Error, kind, id)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFound(kind, id)
	}
	return nil
}
