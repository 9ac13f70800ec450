package companyerrors

import (
	"net/http"

	"github.com/viorizz/swom/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company type",
		http.StatusBadRequest,
	)
)
