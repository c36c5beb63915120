package generation

import "context"

// Generator defines the interface for producing blog post content from a
// topic. This interface is the boundary between the application core and the
// external writing pipeline; implementations live under internal/platform.
//
// No contract on latency or retry behavior is assumed by callers. The
// background worker bounds an invocation with a context deadline.
type Generator interface {
	// GeneratePost runs the pipeline for the given topic.
	// Returns the pipeline's result or an error if generation fails for any
	// reason (see errors.go for the sentinel types).
	GeneratePost(ctx context.Context, topic string) (*Result, error)
}
