package policy

import "bookhub/internal/shared"

// Catalog: anyone reads, any authenticated actor writes.
var Catalog = Policy{
	AllowReads(shared.KindBook, shared.KindAuthor, shared.KindPost, shared.KindLibrary, shared.KindLibrarian, shared.KindTag),
	DenyAnonymous(),
	AlwaysAllow(),
}

// AdminOrReadOnly: anyone reads, writes need the admin role.
var AdminOrReadOnly = Policy{
	AllowReads(),
	DenyAnonymous(),
	RequireRole(shared.RoleAdmin),
	AlwaysAllow(),
}

// Blog: anyone reads, authenticated actors create, only the author edits or deletes.
var Blog = Policy{
	AllowReads(),
	DenyAnonymous(),
	RequireOwner(),
	AlwaysAllow(),
}

// Bookshelf: every operation needs a login and the matching capability.
var Bookshelf = Policy{
	DenyAnonymous(),
	RequireCapability(),
	AlwaysAllow(),
}

// Self: an authenticated actor acting on rows it owns.
var Self = Policy{
	DenyAnonymous(),
	RequireOwner(),
	AlwaysAllow(),
}

// Role gates a view on an exact role.
func Role(role string) Policy {
	return Policy{
		DenyAnonymous(),
		RequireRole(role),
		AlwaysAllow(),
	}
}
