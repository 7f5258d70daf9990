// Package store provides abstractions for data persistence: the UserStore
// and TrackerStore interfaces the service layer depends on, the sentinel
// error taxonomy shared by all implementations, and transaction helpers.
package store
