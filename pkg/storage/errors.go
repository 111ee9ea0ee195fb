package storage

import (
	"errors"
	"net/http"
)

// Key errors are returned before any request reaches the container.
var (
	ErrNotFound   = errors.New("document blob not found in container")
	ErrEmptyKey   = errors.New("document key is empty")
	ErrInvalidKey = errors.New(`document key contains a ".." segment`)
)

// MapHTTPStatus maps storage errors to HTTP status codes: a missing
// document is 404 and a rejected key 400.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
