package form

import (
	"errors"
	"net/http"
)

var (
	ErrTeamRequired  = errors.New("team name is required")
	ErrInvalidOption = errors.New("value is not one of the field options")
	ErrInvalidNumber = errors.New("value is not a valid number")
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidForm   = errors.New("invalid form definition")
)

// MapHTTPStatus maps submission errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTeamRequired),
		errors.Is(err, ErrInvalidOption),
		errors.Is(err, ErrInvalidNumber),
		errors.Is(err, ErrUnknownField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
