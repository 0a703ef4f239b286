package models

// User is an authenticated account identity.
//
// UserID is the stable opaque handle used by every downstream operation;
// Username is the human-facing name and the primary key of the credential
// table.
type User struct {
	// UserID is the UUID assigned at registration. It never changes.
	UserID string `json:"user_id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Password carries the plain-text password on register/login requests
	// only. It is never persisted or logged.
	Password string `json:"password,omitempty"`

	// PasswordHash is the encoded PBKDF2 hash loaded from storage.
	// Never serialized.
	PasswordHash string `json:"-"`
}

// Identity returns a copy of u with every credential field cleared, suitable
// for responses and for storing in a request context.
func (u User) Identity() User {
	return User{UserID: u.UserID, Username: u.Username}
}

// TableName returns the name of the credential table.
func (u User) TableName() string {
	return "users"
}
