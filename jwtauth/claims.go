package jwtauth

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims is the identity payload carried by a verified token
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Principal is the authenticated caller of a single request.
// It is derived from verified Claims and lives only in the request context.
type Principal struct {
	ID       int64
	Username string
	Role     string
}

// HasRole reports whether the principal holds exactly the given role
func (p *Principal) HasRole(role string) bool {
	return p != nil && p.Role == role
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

func principalFromClaims(c *Claims) *Principal {
	return &Principal{ID: c.ID, Username: c.Username, Role: c.Role}
}
