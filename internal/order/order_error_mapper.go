package order

import (
	"errors"
	"strings"

	ordererrors "github.com/viorizz/swom/internal/order/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ordererrors.ErrOrderNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_order_item_position" {
			return ordererrors.ErrDuplicateItemPosition
		}
		if pgErr.Code == "22P02" {
			return ordererrors.ErrInvalidOrderID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_order_item_position") {
		return ordererrors.ErrDuplicateItemPosition
	}

	return err
}
