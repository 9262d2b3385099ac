// Package app provides the backend's application service layer.
//
// Each use case turns a downstream call (AI service, database) into a fail-soft outcome:
// errors become data, never propagate to the HTTP layer. Depends on domain interfaces,
// not concrete implementations.
package app
