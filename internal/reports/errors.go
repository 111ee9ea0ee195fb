package reports

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/storage"
)

// Domain errors for report operations.
var (
	ErrNotFound          = errors.New("report not found")
	ErrDuplicate         = errors.New("report already exists")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrRenderFailed      = errors.New("report rendering failed")
	ErrUploadFailed      = errors.New("report upload failed")
	ErrUnrecorded        = errors.New("report published but not recorded")
	ErrBusy              = errors.New("another report is being published")
	ErrInvalidID         = errors.New("invalid report id")
)

// MapHTTPStatus maps report domain errors to HTTP status codes. Storage
// errors that reach a handler unwrapped map as storage.MapHTTPStatus does.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidSubmission) || errors.Is(err, ErrInvalidID) || errors.Is(err, pdf.ErrUnsupportedText) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrBusy) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrUploadFailed) {
		return http.StatusBadGateway
	}
	return storage.MapHTTPStatus(err)
}
