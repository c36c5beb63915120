package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyTopic is returned when the post title passed to the generator is empty.
	ErrEmptyTopic = errors.New("topic cannot be empty")
)
