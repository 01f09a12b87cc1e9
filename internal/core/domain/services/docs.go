// Package services contains domain services that do not belong to a single
// aggregate.
//
// RiderLocker serializes workflows that read a rider's work status and then
// write it, so that two assignments started at the same time for the same
// rider cannot both observe it as idle.
package services
