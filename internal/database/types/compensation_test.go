package types_test

import (
	"testing"
	"time"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/coopmed/coopmed/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(reason enum.CompensationReason, status enum.CompensationStatus) *types.CompensationRecord {
	return &types.CompensationRecord{
		Reason:    reason,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCompensationStateMachine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		record      *types.CompensationRecord
		check       func(*types.CompensationRecord) error
		expectedErr error
	}{
		{
			name:   "pending can settle",
			record: record(enum.CompensationReasonRemoved, enum.CompensationStatusPending),
			check:  (*types.CompensationRecord).CanSettle,
		},
		{
			name:        "paid cannot settle again",
			record:      record(enum.CompensationReasonRemoved, enum.CompensationStatusPaid),
			check:       (*types.CompensationRecord).CanSettle,
			expectedErr: types.ErrCompensationSettled,
		},
		{
			name:   "paid can revert",
			record: record(enum.CompensationReasonRefund, enum.CompensationStatusPaid),
			check:  (*types.CompensationRecord).CanRevert,
		},
		{
			name:        "pending cannot revert",
			record:      record(enum.CompensationReasonRefund, enum.CompensationStatusPending),
			check:       (*types.CompensationRecord).CanRevert,
			expectedErr: types.ErrCompensationNotSettled,
		},
		{
			name:   "pending removal can restore",
			record: record(enum.CompensationReasonRemoved, enum.CompensationStatusPending),
			check:  (*types.CompensationRecord).CanRestore,
		},
		{
			name:        "non-removal reason cannot restore",
			record:      record(enum.CompensationReasonRefund, enum.CompensationStatusPending),
			check:       (*types.CompensationRecord).CanRestore,
			expectedErr: types.ErrNotRemovalCompensation,
		},
		{
			name:        "paid removal cannot restore",
			record:      record(enum.CompensationReasonRemoved, enum.CompensationStatusPaid),
			check:       (*types.CompensationRecord).CanRestore,
			expectedErr: types.ErrCompensationSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.check(tt.record)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
