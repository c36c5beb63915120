package mocks

import (
	"context"

	"github.com/quillworks/quill-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GeneratePostFn allows test cases to mock the GeneratePost behavior
	GeneratePostFn func(ctx context.Context, topic string) (*generation.Result, error)

	// Default values used when GeneratePostFn isn't defined
	Result *generation.Result
	Err    error

	// Calls records the topics passed to GeneratePost
	Calls []string
}

// GeneratePost implements the generation.Generator interface
func (m *MockGenerator) GeneratePost(ctx context.Context, topic string) (*generation.Result, error) {
	m.Calls = append(m.Calls, topic)

	if m.GeneratePostFn != nil {
		return m.GeneratePostFn(ctx, topic)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return generation.TextResult("generated content for " + topic), nil
}
