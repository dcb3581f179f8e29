package enum_test

import (
	"testing"

	"github.com/coopmed/coopmed/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompensationReason(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"removed", "refund", "proceeds"} {
		reason, err := enum.ParseCompensationReason(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(reason))
	}

	_, err := enum.ParseCompensationReason("banana")
	assert.Error(t, err)
}

func TestParseCompensationStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"pending", "paid"} {
		status, err := enum.ParseCompensationStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(status))
	}

	_, err := enum.ParseCompensationStatus("settled")
	assert.Error(t, err)
}
