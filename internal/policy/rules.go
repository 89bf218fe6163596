package policy

import (
	"strings"

	"bookhub/internal/shared"
)

// AllowReads allows list and retrieve for anyone, on every kind or only the given ones.
func AllowReads(kinds ...shared.Kind) Rule {
	return func(_ Actor, req Request) Decision {
		if !req.Op.IsRead() {
			return Skip()
		}
		if len(kinds) == 0 {
			return Allow()
		}
		for _, k := range kinds {
			if k == req.Kind {
				return Allow()
			}
		}
		return Skip()
	}
}

// DenyAnonymous denies every operation of an unauthenticated actor.
func DenyAnonymous() Rule {
	return func(actor Actor, _ Request) Decision {
		if !actor.Authenticated() {
			return Deny(shared.ReasonUnauthenticated)
		}
		return Skip()
	}
}

// RequireOwner denies writes on a loaded target the actor does not own.
// Requests without a target (create, or a pre-load check) skip.
func RequireOwner() Rule {
	return func(actor Actor, req Request) Decision {
		if req.Op.IsRead() || req.Target == nil {
			return Skip()
		}
		if req.Target.OwnerID() != actor.UserID {
			return Deny(shared.ReasonNotOwner)
		}
		return Skip()
	}
}

// capabilities maps an operation to the bookshelf capability it needs.
var capabilities = map[Operation]string{
	OpList:     shared.CanView,
	OpRetrieve: shared.CanView,
	OpCreate:   shared.CanCreate,
	OpUpdate:   shared.CanEdit,
	OpDelete:   shared.CanDelete,
}

// RequireCapability denies when the actor lacks the capability of the operation.
func RequireCapability() Rule {
	return func(actor Actor, req Request) Decision {
		required, ok := capabilities[req.Op]
		if !ok {
			return Deny(shared.ReasonMissingPermission)
		}
		if actor.IsSuperuser || hasCapability(actor.Permissions, required) {
			return Skip()
		}
		return Deny(shared.ReasonMissingPermission)
	}
}

// hasCapability matches exact names, "*" and prefix wildcards such as "bookshelf.*".
func hasCapability(granted []string, required string) bool {
	for _, g := range granted {
		if g == required || g == "*" {
			return true
		}
		if strings.HasSuffix(g, "*") && strings.HasPrefix(required, strings.TrimSuffix(g, "*")) {
			return true
		}
	}
	return false
}

// RequireRole denies unless the actor's role equals role.
func RequireRole(role string) Rule {
	return func(actor Actor, _ Request) Decision {
		if actor.Role != role {
			return Deny(shared.ReasonWrongRole)
		}
		return Skip()
	}
}

// AlwaysAllow ends a policy that has passed its checks.
func AlwaysAllow() Rule {
	return func(Actor, Request) Decision {
		return Allow()
	}
}
