// Package rider models rider applications and the work status of approved
// riders.
//
// Key business rules:
//   - An email has at most one pending or approved application at a time
//     (enforced by the store, see ports.RiderRepository.Apply)
//   - Applications move Pending -> Approved or Pending -> Declined, never back
//   - Work status toggles Idle <-> Busy only while the application is Approved
//   - A rider can be assigned a parcel only when Approved and Idle
package rider
