package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-secure-data/internal/service"
	"github.com/MKhiriev/go-secure-data/internal/store"
)

// errorStatusMap lists service and store errors with a dedicated status.
// Anything else is a 500.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified:   http.StatusInternalServerError,

	store.ErrNotFound:        http.StatusNotFound,
	store.ErrInvalidIdentity: http.StatusBadRequest,
	store.ErrIO:              http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
