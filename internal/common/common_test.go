package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValid(t *testing.T) {
	assert.NoError(t, CheckValid(true, "unused"))

	err := CheckValid(false, "invalid quantity")
	require.Error(t, err)
	assert.Equal(t, "invalid quantity", err.Error())
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), ErrInvalidArgument)
}

func TestFirstInvalid(t *testing.T) {
	assert.NoError(t, FirstInvalid(nil, nil))
	err := FirstInvalid(nil, CheckValid(false, "a"), CheckValid(false, "b"))
	assert.EqualError(t, err, "a")
}

func TestUnexpectedError(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &UnexpectedError{Op: "read", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsUnexpectedError(fmt.Errorf("outer: %w", err)))
	assert.False(t, IsUnexpectedError(cause))
}

func TestNotSigned(t *testing.T) {
	assert.ErrorIs(t, NotSigned(), ErrIllegalState)
	assert.NotErrorIs(t, NotSigned(), ErrInvalidArgument)
}

func TestHexHelpers(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"00ff", true},
		{"ABcd", true},
		{"", false},
		{"abc", false},
		{"zz", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHex(tt.in))
		})
	}

	assert.True(t, IsHexOfLen("0011", 2))
	assert.False(t, IsHexOfLen("0011", 3))

	b, err := DecodeHex("link", "0a0b")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x0b}, b)

	_, err = DecodeHex("link", "xyz")
	assert.EqualError(t, err, "invalid link")
}

func TestConcat(t *testing.T) {
	assert.Equal(t, []byte{1, 2, 3}, Concat([]byte{1}, nil, []byte{2, 3}))
	assert.Empty(t, Concat())
}
