package event

const UserRegisteredDestination string = "user_registered"

// UserRegisteredMessage announces a stored registration. Sensitive fields
// (password hash, CPF) are never published.
type UserRegisteredMessage struct {
	UserID       int64  `json:"user_id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	RegisteredAt int64  `json:"registered_at"`
}
