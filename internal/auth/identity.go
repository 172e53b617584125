// Package auth implements the identity session layer: the OIDC login
// flow against a fixed-endpoint provider, and the session-scoped
// identity with its resolved role.
package auth

import "encoding/gob"

// Role is the caller's resolved permission level. It is determined once
// at login and carried in the session for the rest of its lifetime.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleReader    Role = "reader"
	RolePublisher Role = "publisher"
	RoleModerator Role = "moderator"
)

// Identity is the session-scoped user identity extracted from ID token
// claims. It is never persisted; it lives and dies with the session.
type Identity struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}

func init() {
	// scs serializes session values with gob.
	gob.Register(Identity{})
}

// Anonymous is the identity used for requests with no session user.
func Anonymous() Identity {
	return Identity{Role: RoleAnonymous}
}

// ResolveRole maps the provider's name claim to a role. The identity
// provider has no role claim of its own; the accounts named "moderator"
// and "publisher" are the privileged ones, and any other authenticated
// account is a reader.
func ResolveRole(name string) Role {
	switch name {
	case "moderator":
		return RoleModerator
	case "publisher":
		return RolePublisher
	default:
		return RoleReader
	}
}

// IsAuthenticated reports whether the identity belongs to a logged-in user.
func (i Identity) IsAuthenticated() bool {
	return i.Role != RoleAnonymous && i.Role != ""
}

// IsModerator reports whether the identity may approve or delete
// articles and redact or delete any comment.
func (i Identity) IsModerator() bool {
	return i.Role == RoleModerator
}

// IsPublisher reports whether the identity may submit articles.
func (i Identity) IsPublisher() bool {
	return i.Role == RolePublisher
}
