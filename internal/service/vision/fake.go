package vision

import (
	"context"
	"image"
	"math/rand/v2"
	"sync"
)

// FakeClassifier is a classifier that never looks at pixels.
// It either repeats a fixed answer or draws pseudo-random answers from a
// seeded generator, which keeps demo runs reproducible.
type FakeClassifier struct {
	mu     sync.Mutex
	rng    *rand.Rand
	answer bool
}

var _ Classifier = (*FakeClassifier)(nil)

// NewFakeClassifier returns a classifier that always answers with answer.
func NewFakeClassifier(answer bool) *FakeClassifier {
	return &FakeClassifier{answer: answer}
}

// NewRandomClassifier returns a classifier that answers pseudo-randomly
// from the given seed.
func NewRandomClassifier(seed uint64) *FakeClassifier {
	return &FakeClassifier{
		rng: rand.New(rand.NewPCG(seed, 0)), //nolint:gosec // simulated answers, not cryptographic
	}
}

// SetAnswer pins the classifier to a fixed answer from now on,
// even when it was seeded randomly.
func (c *FakeClassifier) SetAnswer(answer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rng = nil
	c.answer = answer
}

// ContainsCat implements Classifier. The image and threshold are ignored.
func (c *FakeClassifier) ContainsCat(_ context.Context, _ image.Image, _ float32) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rng != nil {
		return c.rng.IntN(2) == 1, nil
	}

	return c.answer, nil
}
