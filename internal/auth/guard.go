package auth

import "ricemill-backend/internal/models"

// Principal is the authenticated actor for one request. It is built from the
// verified token and treated as an immutable value; services never look up
// permissions themselves.
type Principal struct {
	UserID      uint
	Name        string
	Role        models.UserRole
	Permissions []string
}

// HasPermission: ADMIN holds every permission, everyone else only what is in
// their explicit permission set. Pure function so it can be unit tested
// without any request context.
func HasPermission(p Principal, code string) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	for _, c := range p.Permissions {
		if c == code {
			return true
		}
	}
	return false
}

// HasAnyPermission is the OR over a list of codes.
func HasAnyPermission(p Principal, codes ...string) bool {
	for _, code := range codes {
		if HasPermission(p, code) {
			return true
		}
	}
	return false
}
