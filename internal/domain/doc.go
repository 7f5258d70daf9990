// Package domain defines the core business entities of the Parcelo API:
// users and the parcel trackers they register. Entities validate themselves
// and expose sentinel errors for the conditions callers are expected to
// match with errors.Is.
package domain
