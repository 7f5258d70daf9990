// Package tracking provides the client for the external carrier tracking
// service, the source of shipment events for tracker registration and
// anonymous code search.
//
// This package is an infrastructure adapter: it translates between the
// carrier's wire format and the application's domain models without
// exposing the carrier API to the core service. The Provider interface is
// the seam the service layer depends on; Client is its HTTP implementation
// and CachedProvider is a Redis-backed read-through decorator used for
// anonymous lookups.
package tracking
