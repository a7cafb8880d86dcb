package user

import "shopspotlight/models"

// SignUpRequest carries the fields of a new account. Role is fixed here and
// never changes afterwards.
type SignUpRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     models.Role
}

// ProfileUpdate patches the account's editable fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name     *string
	Phone    *string
	PhotoURL *string
}

// Service manages accounts and sessions.
type Service interface {
	// SignUp registers a new account and returns it with a session token.
	SignUp(req SignUpRequest) (*models.User, string, error)
	// SignIn verifies credentials and returns the account with a fresh
	// session token.
	SignIn(email, password string) (*models.User, string, error)
	// SignOut invalidates the account's current session.
	SignOut(userID string) error
	// GetByID returns the account without credential fields.
	GetByID(id string) (*models.User, error)
	// UpdateProfile patches the account's editable fields.
	UpdateProfile(userID string, update ProfileUpdate) error
}
