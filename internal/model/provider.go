package model

import "context"

// Generator produces free text from a prompt using a generative model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageFinder looks up an image URL for a search query.
// An empty URL with a nil error means nothing matched.
type ImageFinder interface {
	FindImage(ctx context.Context, query string) (string, error)
}
