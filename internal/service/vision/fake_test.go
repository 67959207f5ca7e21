package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFakeClassifierFixedAnswer verifies a fixed-answer classifier repeats
// its answer regardless of input.
func TestFakeClassifierFixedAnswer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	yes := NewFakeClassifier(true)
	no := NewFakeClassifier(false)

	for range 3 {
		got, err := yes.ContainsCat(ctx, nil, 50)
		require.NoError(t, err)
		require.True(t, got)

		got, err = no.ContainsCat(ctx, nil, 50)
		require.NoError(t, err)
		require.False(t, got)
	}
}

// TestFakeClassifierSetAnswer verifies SetAnswer pins the answer, including
// on a previously random classifier.
func TestFakeClassifierSetAnswer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	c := NewRandomClassifier(7)
	c.SetAnswer(true)

	for range 3 {
		got, err := c.ContainsCat(ctx, nil, 50)
		require.NoError(t, err)
		require.True(t, got)
	}

	c.SetAnswer(false)

	got, err := c.ContainsCat(ctx, nil, 50)
	require.NoError(t, err)
	require.False(t, got)
}

// TestFakeClassifierSeededSequence verifies two classifiers with the same
// seed produce the same answer sequence.
func TestFakeClassifierSeededSequence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	first := NewRandomClassifier(42)
	second := NewRandomClassifier(42)

	for range 16 {
		a, err := first.ContainsCat(ctx, nil, 50)
		require.NoError(t, err)

		b, err := second.ContainsCat(ctx, nil, 50)
		require.NoError(t, err)

		require.Equal(t, a, b)
	}
}
