// Package api contains the HTTP transport layer: request/response DTOs,
// chi handlers for the auth, user and tracking endpoints, and the mapping
// from the application's sentinel errors to HTTP status codes.
//
// Handlers are thin: they decode and validate the request, call the
// AccountService, and translate the outcome. Business rules live in the
// service layer; raw internal errors never reach the client.
package api
