package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapFormatsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap("upstream_error", "failed to fetch", cause)

	require.EqualError(t, err, "failed to fetch: boom")
	require.ErrorIs(t, err, cause)
	require.EqualError(t, Wrap("invalid_input", "bad amount", nil), "bad amount")
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap("invalid_value", "conversion rejected", nil))

	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, "invalid_value", code)
	require.True(t, IsCode(err, "invalid_value"))
	require.False(t, IsCode(err, "unknown_unit"))

	_, ok = CodeOf(errors.New("plain"))
	require.False(t, ok)
}
