package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User is the engine's view of the identity provider's principal: just
// enough to gate rental creation on a complete, verified profile.
type User struct {
	ID            uuid.UUID
	Email         string
	EmailVerified bool
	Role          Role
	Phone         string
	City          string
	Region        string
}

// MissingProfileFields lists what still blocks the user from transacting.
// Empty means the profile is complete.
func (u *User) MissingProfileFields() []string {
	var missing []string
	if !u.EmailVerified {
		missing = append(missing, "email_verified")
	}
	if strings.TrimSpace(u.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(u.City) == "" || strings.TrimSpace(u.Region) == "" {
		missing = append(missing, "location")
	}
	return missing
}
