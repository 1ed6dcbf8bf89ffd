package domain

// LoginResult is the outcome of a login attempt. A failed attempt carries no
// detail: "user not found" and "wrong password" are deliberately
// indistinguishable so callers cannot learn which field was wrong.
type LoginResult struct {
	Success bool
	UserID  int64
}
