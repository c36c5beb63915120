// Package gemini provides an implementation of the generation.Generator
// interface that uses Google's Gemini API to write blog post content from a
// post title.
//
// This package is an infrastructure adapter: it translates between the
// application's generation boundary and the external Gemini service without
// exposing the details of that service to the core application.
//
// Key components:
//
// 1. GeminiGenerator:
//   - Implements the generation.Generator interface
//   - Handles communication with the Gemini API
//   - Coerces raw model output into generation.Result values
//
// 2. Prompt Management:
//   - Loads the prompt template from a file at construction time
//   - Substitutes the post title into the template per request
//
// 3. Error Handling:
//   - Implements retry logic with exponential backoff for transient errors
//   - Categorizes API errors into the generation package's sentinel errors
//   - Treats safety-filter blocks as permanent failures
package gemini
