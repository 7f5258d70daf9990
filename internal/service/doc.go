// Package service contains the application core: the AccountService that
// enforces the business invariants around user accounts and parcel
// registration (unique emails, password verification, idempotent track-code
// registration) and orchestrates the user store, the tracker store and the
// carrier lookup provider.
//
// Every expected business failure is a sentinel error from the store or
// auth packages (not-found, duplicate, invalid credentials); the transport
// layer maps them to wire responses with errors.Is.
package service
