package company

import (
	"errors"

	companyerrors "github.com/viorizz/swom/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 22P02: invalid input syntax for type uuid
		if pgErr.Code == "22P02" {
			return companyerrors.ErrInvalidCompanyID
		}
	}

	return err
}
