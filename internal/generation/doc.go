// Package generation provides the interface and result model for the
// external content generation pipeline. It abstracts the details of the
// LLM integration, allowing the application to produce blog post content
// without coupling to a specific external service.
package generation
