// Package domain defines the core domain types and interfaces.
//
// Shared request/response shapes, the fail-soft outcome types returned by the backend
// use cases, and the consumer-side interfaces for the AI client and the database clock.
// No implementation code - just contracts.
package domain
