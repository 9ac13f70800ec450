package parterrors

import (
	"net/http"

	"github.com/viorizz/swom/internal/shared/apperror"
)

var (
	ErrPartNotFound = apperror.New(
		apperror.CodeNotFound,
		"Part not found",
		http.StatusNotFound,
	)

	ErrInvalidPartID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid part ID",
		http.StatusBadRequest,
	)
)
