package handler

import (
	"errors"
	"net/http"

	"github.com/coopmed/coopmed/internal/database/types"
	"go.uber.org/zap"
)

// writeError maps service errors onto HTTP status codes. Sentinel errors
// surface with their own message; anything unrecognized is an internal
// error and only gets logged.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, types.ErrSelfRemoval):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, types.ErrMemberNotFound),
		errors.Is(err, types.ErrCompensationNotFound),
		errors.Is(err, types.ErrSnapshotUnavailable):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, types.ErrNotRemovalCompensation),
		errors.Is(err, types.ErrCompensationSettled),
		errors.Is(err, types.ErrCompensationNotSettled):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("Request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
