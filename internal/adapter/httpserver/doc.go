// Package httpserver exposes the AI and backend services over HTTP with echo.
//
// Both servers share the middleware stack (request IDs, request logging, recovery, metrics,
// structured errors) and the health, version, and metrics endpoints. The backend adds CORS
// for the dev frontend. Downstream failures are answered with 200 and an "error" field.
package httpserver
