package gorm

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type base struct {
	db     *gorm.DB
	logger *slog.Logger
	name   string
}

func newBase(db *gorm.DB, logger *slog.Logger, name string) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{db: db, logger: logger, name: name}
}

func (b base) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+6)
	fields = append(fields,
		"event", event,
		"store", b.name,
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	b.logger.Error("store operation failed", fields...)
	return err
}

// withAuthor narrows author population to the public projection.
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "avatar", "bio")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
