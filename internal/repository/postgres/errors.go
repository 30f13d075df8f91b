package postgres

import (
	"context"
	"errors"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsDuplicateError checks if err is a unique constraint violation
func IsDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsForeignKeyError checks if err is a foreign key violation
func IsForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// mapError converts a gorm/pgx error into a domain error. conflict is the
// sentinel reported for unique violations.
func mapError(err error, notFound string, conflict error) error {
	if err == nil {
		return nil
	}
	var derr *domain.Error
	switch {
	case errors.As(err, &derr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFound(notFound)
	case IsDuplicateError(err):
		if conflict == nil {
			return domain.Conflict("resource already exists", err)
		}
		return domain.Conflict(conflict.Error(), errors.Join(conflict, err))
	case IsForeignKeyError(err):
		return domain.InvalidArgument(domain.ErrHeroMissing.Error(), errors.Join(domain.ErrHeroMissing, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.Unavailable("request cancelled", err)
	}
	return domain.Unavailable("service unavailable", err)
}

// affected turns a zero-row write into NotFound.
func affected(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func ownerOf(ctx context.Context, db *gorm.DB, model interface{}, id uint, notFound string) (uuid.UUID, error) {
	var owners []uuid.UUID
	err := db.WithContext(ctx).Model(model).Where("id = ?", id).Limit(1).Pluck("user_id", &owners).Error
	if err != nil {
		return uuid.Nil, mapError(err, notFound, nil)
	}
	if len(owners) == 0 {
		return uuid.Nil, domain.NotFound(notFound)
	}
	return owners[0], nil
}
