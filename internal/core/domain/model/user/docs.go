// Package user models signed-in identities and their authorization role.
//
// The role is the single source of truth for authorization decisions. It
// defaults to RoleUser for unknown identities, and RoleRider is reachable only
// by approving a rider application.
package user
