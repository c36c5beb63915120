package generation

import (
	"encoding/json"
	"fmt"
)

// ResultKind tags the shape a pipeline result arrived in. The external
// pipeline's return type is not strictly typed, so the coercion to stored
// text is made explicit here instead of being guessed at the call site.
type ResultKind int

const (
	// KindText is a plain text result, stored as-is.
	KindText ResultKind = iota

	// KindAnswer is a structured result exposing a designated "answer"
	// field; the field's value is stored.
	KindAnswer

	// KindOpaque is any other structured result; a textual rendering of the
	// whole value is stored.
	KindOpaque
)

// Result is the tagged union of the shapes the pipeline may return.
type Result struct {
	kind   ResultKind
	text   string
	answer string
	raw    any
}

// TextResult wraps a plain text pipeline result.
func TextResult(text string) *Result {
	return &Result{kind: KindText, text: text}
}

// AnswerResult wraps a structured result whose "answer" field was present.
func AnswerResult(answer string) *Result {
	return &Result{kind: KindAnswer, answer: answer}
}

// OpaqueResult wraps a structured result with no recognizable answer field.
func OpaqueResult(raw any) *Result {
	return &Result{kind: KindOpaque, raw: raw}
}

// Kind returns the tag of the result.
func (r *Result) Kind() ResultKind {
	return r.kind
}

// Text returns the content to store for this result:
// the text itself, the answer field's value, or a textual rendering of the
// whole value as the fallback branch.
func (r *Result) Text() string {
	switch r.kind {
	case KindText:
		return r.text
	case KindAnswer:
		return r.answer
	default:
		return renderOpaque(r.raw)
	}
}

// Coerce classifies a decoded pipeline value into a Result. A string maps to
// KindText; a map with a string "answer" key maps to KindAnswer; everything
// else is opaque.
func Coerce(value any) *Result {
	switch v := value.(type) {
	case string:
		return TextResult(v)
	case map[string]any:
		if answer, ok := v["answer"].(string); ok {
			return AnswerResult(answer)
		}
		return OpaqueResult(v)
	default:
		return OpaqueResult(value)
	}
}

// renderOpaque produces a stable textual representation of an arbitrary
// value. JSON is preferred; fmt is the last resort for unmarshalable values.
func renderOpaque(raw any) string {
	if raw == nil {
		return ""
	}
	if data, err := json.Marshal(raw); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", raw)
}
