package models

// Account roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account is a login identity. Passwords are stored and compared as plain
// strings; the store offers no authentication security.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Public returns a copy of the account without its password
func (a Account) Public() Account {
	a.Password = ""
	return a
}

// Credentials is the login/register request body
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
}

// PasswordReset is the reset-password request body
type PasswordReset struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}
