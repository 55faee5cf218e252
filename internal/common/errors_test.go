package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserErrorUnwraps(t *testing.T) {
	err := NewUserError("This email is already registered", ErrEmailInUse)

	assert.True(t, errors.Is(err, ErrEmailInUse))
	assert.Contains(t, err.Error(), "This email is already registered")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "direct user error",
			err:  NewUserError("Login failed. Please check your credentials.", ErrInvalidCredentials),
			want: "Login failed. Please check your credentials.",
		},
		{
			name: "wrapped user error",
			err:  fmt.Errorf("signin: %w", NewUserError("Login failed. Please check your credentials.", ErrInvalidCredentials)),
			want: "Login failed. Please check your credentials.",
		},
		{
			name: "internal error gets generic message",
			err:  errors.New("sql: connection refused"),
			want: "Something went wrong. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
