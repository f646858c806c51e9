package record

import (
	"errors"

	recorderrors "go-tenure/internal/record/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes for rows the schema refuses.
const (
	pgNotNullViolation  = "23502"
	pgCheckViolation    = "23514"
	pgNumericOutOfRange = "22003"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, gorm.ErrRecordNotFound) {
		return recorderrors.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgCheckViolation, pgNumericOutOfRange:
			return recorderrors.ErrInvalidRecordData.Wrap(err)
		}
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && writeErr.HasErrorCode(121) {
		// document failed collection validation
		return recorderrors.ErrInvalidRecordData.Wrap(err)
	}

	return err
}
