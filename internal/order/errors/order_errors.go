package ordererrors

import (
	"net/http"

	"github.com/viorizz/swom/internal/shared/apperror"
)

var (
	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)

	ErrInvalidOrderID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid order ID",
		http.StatusBadRequest,
	)

	ErrOrderAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"Order has already been submitted",
		http.StatusConflict,
	)

	ErrDuplicateItemPosition = apperror.New(
		apperror.CodeConflict,
		"An item already occupies this position",
		http.StatusConflict,
	)

	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order item not found",
		http.StatusNotFound,
	)
)
