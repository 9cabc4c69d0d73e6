package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// Generator is a mock of model.Generator.
type Generator struct {
	mock.Mock
}

var _ model.Generator = (*Generator)(nil)

// NewGenerator creates a Generator mock that asserts its expectations on cleanup.
func NewGenerator(t testingT) *Generator {
	m := &Generator{}
	register(&m.Mock, t)
	return m
}

func (m *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// ImageFinder is a mock of model.ImageFinder.
type ImageFinder struct {
	mock.Mock
}

var _ model.ImageFinder = (*ImageFinder)(nil)

// NewImageFinder creates an ImageFinder mock that asserts its expectations on cleanup.
func NewImageFinder(t testingT) *ImageFinder {
	m := &ImageFinder{}
	register(&m.Mock, t)
	return m
}

func (m *ImageFinder) FindImage(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}
