// Package vision defines the image classification contract the security
// engine consumes.
//
// The engine only ever asks one question of an image: does it contain a cat
// at the configured confidence. Classifier is that question as an interface;
// FakeClassifier is a deterministic stand-in used by the CLI and tests, since
// real detection backends are out of scope.
package vision
