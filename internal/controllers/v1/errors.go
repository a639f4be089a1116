package v1

import (
	"errors"
	"net/http"

	"github.com/ledgerline/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the name must not be empty"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup and restore errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
	errRestoreConfirmation = errors.New("the confirmation for the restore API call was incorrect")
)

var errMonthInvalid = errors.New("the month must be given in YYYY-MM format")
