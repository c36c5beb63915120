// Package api contains the HTTP handlers, request/response models and error
// mapping for the public REST surface.
//
// Handlers decode and validate input, call into the service layer, and
// translate service errors into sanitized HTTP responses. No business rules
// live here.
package api
