package pisaerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapUnwrapsToUnderlyingError(t *testing.T) {
	underlying := errors.New("disk full")
	err := IO("writing .docs", underlying)
	require.True(t, errors.Is(err, underlying))
	require.Contains(t, err.Error(), "disk full")
	require.Contains(t, err.Error(), "writing .docs")
}

func TestFormatWithSentinelIsDetectable(t *testing.T) {
	err := Format("query line", ErrEmptyQuery)
	require.True(t, errors.Is(err, ErrEmptyQuery))
}

func TestWrapWithNilErrorStillNamesKind(t *testing.T) {
	err := wrap(ErrFormatError, "truncated header", nil)
	require.True(t, errors.Is(err, ErrFormatError))
	require.Contains(t, err.Error(), "truncated header")
}
