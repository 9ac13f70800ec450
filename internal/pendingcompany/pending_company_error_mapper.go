package pendingcompany

import (
	"errors"
	"strings"

	pendingcompanyerrors "github.com/viorizz/swom/internal/pendingcompany/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pendingcompanyerrors.ErrPendingCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_pending_project_role" {
			return pendingcompanyerrors.ErrPendingRoleAlreadyQueued
		}
		if pgErr.Code == "22P02" {
			return pendingcompanyerrors.ErrInvalidPendingCompanyID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_pending_project_role") {
		return pendingcompanyerrors.ErrPendingRoleAlreadyQueued
	}

	return err
}
