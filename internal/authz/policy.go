// Package authz holds the pure role/ownership decision rules, kept
// free of transport and storage so they can be tested on their own.
package authz

import "github.com/bookhive/bookhive-go/internal/model"

// CanModifyBook reports whether an actor may update or delete a book.
// Admins may touch any book. A user-role actor is refused only for an
// admin-tagged book owned by someone else (or nobody): a custom-tagged
// book is modifiable by any user regardless of owner, which mirrors
// the upstream behavior this API replaces.
func CanModifyBook(actorRole string, actorID int64, ownerID *int64, tag string) bool {
	if actorRole != model.RoleUser {
		return true
	}
	owned := ownerID != nil && *ownerID == actorID
	return owned || tag != model.TagAdmin
}

// CanListAllUsers reports whether an actor may read the full user
// collection. Non-admins only ever see their own record.
func CanListAllUsers(actorRole string) bool {
	return actorRole == model.RoleAdmin
}

// CanCreateUser reports whether an actor may create users through the
// admin collection endpoint (signup is the public path).
func CanCreateUser(actorRole string) bool {
	return actorRole == model.RoleAdmin
}
