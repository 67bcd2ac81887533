package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantErr error
	}{
		{"dark", State{Mode: "dark", Dark: true}, nil},
		{"light", State{Mode: "light", Dark: false}, nil},
		{"empty mode", State{}, ErrInvalidMode},
		{"unknown mode", State{Mode: "sepia"}, ErrInvalidMode},
		{"mismatch", State{Mode: "light", Dark: true}, ErrModeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestState_RelativeChange(t *testing.T) {
	s := State{}
	assert.Equal(t, "never", s.RelativeChange())

	s.ChangedAt = time.Now().Add(-3 * time.Hour)
	assert.Equal(t, "3 hours ago", s.RelativeChange())
}
