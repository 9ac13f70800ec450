package pendingcompanyerrors

import (
	"net/http"

	"github.com/viorizz/swom/internal/shared/apperror"
)

var (
	ErrPendingCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pending company not found",
		http.StatusNotFound,
	)

	ErrInvalidPendingCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid pending company ID",
		http.StatusBadRequest,
	)

	ErrPendingRoleAlreadyQueued = apperror.New(
		apperror.CodeConflict,
		"A pending company already exists for this project role",
		http.StatusConflict,
	)
)
