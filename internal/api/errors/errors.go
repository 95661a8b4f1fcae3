// Package errors maps domain error kinds onto the HTTP surface.
package errors

import (
	"net/http"

	apperrors "voicescribe/internal/app/errors"
)

// HTTPStatus returns the response status for a domain error: validation
// failures are client errors, everything else is a server error.
func HTTPStatus(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
