// Package kernel provides the value objects shared by every aggregate of the
// parcel service:
//   - UUID: generated identifiers for parcels, rider applications, users and payments
//   - Email: the normalized address that ties a user, their rider application,
//     their parcels and their payments together
//
// Both are immutable and have an invalid zero value, so aggregates can detect
// fields that were never set.
package kernel
