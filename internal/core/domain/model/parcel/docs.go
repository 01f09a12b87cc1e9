// Package parcel provides the Parcel aggregate: a delivery request owned by a
// user, assigned to at most one rider, and paid for at most once.
//
// Two independent state machines live on a parcel:
//   - Status: Created -> AssignedRider (-> Delivered, set outside this service)
//   - PaymentStatus: Unpaid -> Paid, terminal
//
// The aggregate enforces the local rules (status and rider agree, payment is
// one-shot). Rules that span other aggregates, such as "the assigned rider is
// busy" or "a paid parcel has a payment record", are enforced by the workflow
// commands in the application layer.
package parcel
