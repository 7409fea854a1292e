package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mustParseDate parses a calendar date in "2006-01-02" form, failing the test
// on malformed input.
func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(birthdateLayout, value)
	require.NoError(t, err)

	return parsed
}
