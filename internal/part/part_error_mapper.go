package part

import (
	"errors"

	parterrors "github.com/viorizz/swom/internal/part/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return parterrors.ErrPartNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return parterrors.ErrInvalidPartID
	}

	return err
}
