package domain

// User is an identity record. Rows are created once at registration and are
// never mutated or deleted; Username and Email are unique case-sensitive.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // argon2id PHC encoded
}
