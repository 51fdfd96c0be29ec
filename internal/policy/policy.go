// Package policy holds the role and ownership rules for the tracker.
// Decisions are pure: no I/O, no clock, no database.
package policy

import "rank-tracker/internal/db"

// Actor identifies the authenticated caller of a service operation.
// The zero Actor is unauthenticated.
type Actor struct {
	ID   uint
	Role string
}

// Authenticated reports whether the actor carries a real identity.
func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == db.RoleAdmin
}

type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// CanPerform decides whether actor may apply op to a record owned by
// ownerID. Reads are open to any authenticated actor. Creates are open
// to any actor holding a known role; callers force the new record's
// owner to the actor, so ownerID is ignored for creates. Updates and
// deletes require the admin role or ownership of the record.
func CanPerform(actor Actor, op Operation, ownerID uint) bool {
	if !actor.Authenticated() {
		return false
	}
	switch op {
	case OpRead:
		return true
	case OpCreate:
		return actor.Role == db.RoleAdmin || actor.Role == db.RoleUser
	case OpUpdate, OpDelete:
		return actor.IsAdmin() || actor.ID == ownerID
	}
	return false
}
