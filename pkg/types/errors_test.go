package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("decode: %w", MalformedRecord("vk", 0x1040))

	require.ErrorIs(t, err, ErrMalformedRecord)
	require.NotErrorIs(t, err, ErrMalformedHive)

	var te *Error
	require.True(t, errors.As(err, &te))
	require.Equal(t, "vk", te.Record)
	require.Equal(t, 0x1040, te.Offset)
	require.Contains(t, err.Error(), "malformed vk record at 0x1040")
}

func TestPathNotFoundNamesSegment(t *testing.T) {
	err := PathNotFound("Lsa")
	require.ErrorIs(t, err, ErrPathNotFound)
	require.Equal(t, "Lsa", err.Segment)
	require.Equal(t, `no child key named "Lsa"`, err.Error())
}

func TestBootKeyUnavailableUnwraps(t *testing.T) {
	cause := PathNotFound("ControlSet001")
	err := BootKeyUnavailable("resolve JD", cause)

	require.ErrorIs(t, err, ErrBootKeyUnavailable)
	require.ErrorIs(t, err, ErrPathNotFound)
	require.NotErrorIs(t, err, ErrMalformedRecord)
}

func TestOutOfBoundsMessage(t *testing.T) {
	err := OutOfBounds(0x2000, 8, 0x1ffc)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.Equal(t, 0x2000, err.Offset)
	require.Contains(t, err.Error(), "8 bytes at 0x2000")
}

func TestErrKindString(t *testing.T) {
	require.Equal(t, "cycle detected", ErrKindCycleDetected.String())
	require.Equal(t, "ErrKind(99)", ErrKind(99).String())
}

func TestNilErrorString(t *testing.T) {
	var e *Error
	require.Equal(t, "<nil>", e.Error())
}
