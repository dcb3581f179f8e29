package types_test

import (
	"testing"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/stretchr/testify/assert"
)

func TestPayableValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		currentValue float64
		expected     float64
	}{
		{"positive balance", 1500, 1500},
		{"zero balance", 0, 0},
		{"negative balance clamped", -50, 0},
		{"fractional balance", 0.01, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			member := &types.Member{CurrentValue: tt.currentValue}
			assert.InDelta(t, tt.expected, member.PayableValue(), 0.0001)
		})
	}
}
