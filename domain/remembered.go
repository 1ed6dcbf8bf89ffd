package domain

// RememberedUser is a remember-me ledger entry joined with its user record,
// as returned to front ends for credential pre-fill.
type RememberedUser struct {
	UserID       int64
	Username     string
	Email        string
	PasswordHash string
}
