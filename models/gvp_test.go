package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusGvp_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to StatusGvp
		want     bool
	}{
		{StatusPendente, StatusAcompanhamento, true},
		{"", StatusAcompanhamento, true},
		{StatusAcompanhamento, StatusFinalizado, true},
		{StatusPendente, StatusFinalizado, false},
		{StatusAcompanhamento, StatusPendente, false},
		{StatusFinalizado, StatusAcompanhamento, false},
		{StatusFinalizado, StatusPendente, false},
		{StatusPendente, StatusPendente, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
