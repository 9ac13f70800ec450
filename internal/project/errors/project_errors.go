package projecterrors

import (
	"net/http"

	"github.com/viorizz/swom/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)

	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project ID",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project status",
		http.StatusBadRequest,
	)

	ErrAmbiguousRoleAssignment = apperror.New(
		apperror.CodeInvalidInput,
		"A role assignment may carry an existing company ID or a new company name, not both",
		http.StatusBadRequest,
	)
)
