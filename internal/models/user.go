package models

// User is a registered account in the mock registry. The password is stored
// and compared as plaintext: the registry is a local mock, not a credential
// store, and the persisted layout includes it on purpose.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

// Sanitized returns a copy safe to hand to callers or persist as the
// current session: everything but the password.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
