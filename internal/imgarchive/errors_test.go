package imgarchive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := wrapErr(KindIO, "write payload", cause)

	var ae *ArchiveError
	require.True(t, errors.As(err, &ae))
	require.Equal(t, KindIO, ae.Kind())
	require.ErrorIs(t, err, cause)
}

func TestArchiveErrorWithoutCause(t *testing.T) {
	err := newErr(KindNotFound, "no such entry: X")
	require.Nil(t, err.(*ArchiveError).Unwrap())
	require.Contains(t, err.Error(), "not_found")
}

func TestErrorKindStrings(t *testing.T) {
	kinds := map[ErrorKind]string{
		KindFormat:        "format",
		KindNotFound:      "not_found",
		KindDuplicateName: "duplicate_name",
		KindInvalidName:   "invalid_name",
		KindIO:            "io",
		KindAccess:        "access",
		KindInvariant:     "invariant_violation",
	}
	for k, want := range kinds {
		require.Equal(t, want, k.String())
	}
}
