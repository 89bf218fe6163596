// Package policy decides whether an actor may run an operation on an entity kind.
//
// A Policy is an ordered list of rules. Each rule allows, denies or skips;
// the first rule that does not skip decides. A policy whose rules all skip
// denies the request.
package policy

import (
	"bookhub/internal/shared"
)

type Operation string

const (
	OpList     Operation = "list"
	OpRetrieve Operation = "retrieve"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
)

// IsRead reports whether op only reads.
func (op Operation) IsRead() bool {
	return op == OpList || op == OpRetrieve
}

// Actor is the caller of an operation. The zero value is anonymous.
type Actor struct {
	UserID      string
	Username    string
	Role        string
	IsStaff     bool
	IsSuperuser bool
	Permissions []string
}

// Anonymous is the actor of unauthenticated requests.
var Anonymous = Actor{}

func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

// ActorFromClaims builds the actor of a verified access token.
func ActorFromClaims(c *shared.AuthClaims) Actor {
	if c == nil {
		return Anonymous
	}
	return Actor{
		UserID:      c.UserID,
		Username:    c.Username,
		Role:        c.Role,
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
		Permissions: c.Permissions,
	}
}

// Owned is implemented by rows that have a single writer.
type Owned interface {
	OwnerID() string
}

// Request is what a rule sees.
type Request struct {
	Op     Operation
	Kind   shared.Kind
	Target Owned // nil when the operation has no loaded target
}

type effect int

const (
	skip effect = iota
	allow
	deny
)

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  shared.DenyReason
	effect  effect
}

func Allow() Decision {
	return Decision{Allowed: true, effect: allow}
}

func Deny(reason shared.DenyReason) Decision {
	return Decision{Reason: reason, effect: deny}
}

// Skip lets the next rule decide.
func Skip() Decision {
	return Decision{effect: skip}
}

// Err returns nil when allowed and *shared.AuthDenied otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &shared.AuthDenied{Reason: d.Reason}
}

// Rule inspects one request.
type Rule func(actor Actor, req Request) Decision

type Policy []Rule

// Authorize evaluates the rules in order.
func (p Policy) Authorize(actor Actor, op Operation, kind shared.Kind, target Owned) Decision {
	req := Request{Op: op, Kind: kind, Target: target}
	for _, rule := range p {
		if d := rule(actor, req); d.effect != skip {
			return d
		}
	}
	if !actor.Authenticated() {
		return Deny(shared.ReasonUnauthenticated)
	}
	return Deny(shared.ReasonMissingPermission)
}
