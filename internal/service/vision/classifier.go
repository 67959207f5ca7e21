package vision

import (
	"context"
	"image"
)

// Classifier answers whether an image contains a cat.
type Classifier interface {
	// ContainsCat reports whether img shows a cat with at least
	// confidenceThreshold percent confidence. Implementations treat the
	// image as opaque input; failures to classify are returned as errors,
	// never as a silent "no cat".
	ContainsCat(ctx context.Context, img image.Image, confidenceThreshold float32) (bool, error)
}
