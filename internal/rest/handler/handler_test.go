package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"self removal", types.ErrSelfRemoval, http.StatusForbidden},
		{"member not found", types.ErrMemberNotFound, http.StatusNotFound},
		{"compensation not found", types.ErrCompensationNotFound, http.StatusNotFound},
		{"snapshot unavailable", types.ErrSnapshotUnavailable, http.StatusNotFound},
		{"not a removal record", types.ErrNotRemovalCompensation, http.StatusBadRequest},
		{"already settled", types.ErrCompensationSettled, http.StatusBadRequest},
		{"not settled", types.ErrCompensationNotSettled, http.StatusBadRequest},
		{"unknown error", errors.New("connection refused"), http.StatusInternalServerError},
		{
			"wrapped sentinel",
			fmt.Errorf("failed to remove member: %w", types.ErrMemberNotFound),
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			writeError(w, zap.NewNop(), tt.err)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
