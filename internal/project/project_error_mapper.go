package project

import (
	"errors"

	pendingcompanyerrors "github.com/viorizz/swom/internal/pendingcompany/errors"
	projecterrors "github.com/viorizz/swom/internal/project/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Pending rows are written by the two-phase create, so their
		// uniqueness violation surfaces through this mapper.
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_pending_project_role" {
			return pendingcompanyerrors.ErrPendingRoleAlreadyQueued
		}
		if pgErr.Code == "22P02" {
			return projecterrors.ErrInvalidProjectID
		}
	}

	return err
}
