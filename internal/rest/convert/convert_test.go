package convert_test

import (
	"testing"
	"time"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/coopmed/coopmed/internal/database/types/enum"
	"github.com/coopmed/coopmed/internal/rest/convert"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompensation(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	record := &types.CompensationRecord{
		ID:         id,
		MemberID:   "u1",
		MemberName: "Ana",
		Amount:     1500,
		Reason:     enum.CompensationReasonRemoved,
		Status:     enum.CompensationStatusPending,
		Snapshot:   &types.MemberSnapshot{ID: "u1"},
		CreatedAt:  time.Now().UTC(),
	}

	converted := convert.Compensation(record)
	require.NotNil(t, converted)

	assert.Equal(t, id.String(), converted.ID)
	assert.Equal(t, "u1", converted.MemberID)
	assert.Equal(t, "removed", converted.Reason)
	assert.Equal(t, "pending", converted.Status)
	assert.True(t, converted.HasSnapshot)
	require.NotNil(t, converted.Snapshot)
	assert.Equal(t, "u1", converted.Snapshot.ID)
	assert.Nil(t, converted.PaidAt)
}

func TestCompensationWithoutSnapshot(t *testing.T) {
	t.Parallel()

	converted := convert.Compensation(&types.CompensationRecord{
		ID:     uuid.New(),
		Reason: enum.CompensationReasonRefund,
		Status: enum.CompensationStatusPaid,
	})

	assert.False(t, converted.HasSnapshot)
	assert.Nil(t, converted.Snapshot)
}

func TestMemberNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, convert.Member(nil))
	assert.Nil(t, convert.Compensation(nil))
}

func TestMember(t *testing.T) {
	t.Parallel()

	member := &types.Member{
		ID:           "u1",
		Email:        "ana@coop.example",
		Name:         "Ana",
		Role:         enum.MemberRoleAdmin,
		CurrentValue: 1500,
	}

	converted := convert.Member(member)
	require.NotNil(t, converted)

	assert.Equal(t, "u1", converted.ID)
	assert.Equal(t, "admin", converted.Role)
	assert.InDelta(t, 1500.0, converted.CurrentValue, 0.001)
}
