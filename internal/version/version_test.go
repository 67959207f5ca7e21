package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVersionStrings verifies Short and Full stay populated and consistent.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
}
