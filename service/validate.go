package service

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/croftworks/credstore/domain"
)

// Field limits. These are an observable contract: front ends map the
// resulting messages back to input widgets.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
	EmailMinLen    = 6
	EmailMaxLen    = 150
	PasswordMinLen = 8
	PasswordMaxLen = 64
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// checkUsername applies the username rules in order: min length, max length,
// charset. Returns nil when the value passes. Whitespace is never stripped; a
// space fails the charset rule like any other character outside [A-Za-z0-9_].
func checkUsername(username string) *domain.ValidationError {
	switch n := utf8.RuneCountInString(username); {
	case n < UsernameMinLen:
		return &domain.ValidationError{
			Field:   domain.FieldUsername,
			Kind:    domain.KindTooShort,
			Message: fmt.Sprintf("username must be at least %d characters", UsernameMinLen),
		}
	case n > UsernameMaxLen:
		return &domain.ValidationError{
			Field:   domain.FieldUsername,
			Kind:    domain.KindTooLong,
			Message: fmt.Sprintf("username must be at most %d characters", UsernameMaxLen),
		}
	case !usernamePattern.MatchString(username):
		return &domain.ValidationError{
			Field:   domain.FieldUsername,
			Kind:    domain.KindInvalidChars,
			Message: "username must not contain spaces or special characters",
		}
	}
	return nil
}

// checkEmail applies the email rules in order: min length, max length,
// local@domain.tld shape with a 2+ letter TLD.
func checkEmail(email string) *domain.ValidationError {
	switch n := utf8.RuneCountInString(email); {
	case n < EmailMinLen:
		return &domain.ValidationError{
			Field:   domain.FieldEmail,
			Kind:    domain.KindTooShort,
			Message: fmt.Sprintf("email address must be at least %d characters", EmailMinLen),
		}
	case n > EmailMaxLen:
		return &domain.ValidationError{
			Field:   domain.FieldEmail,
			Kind:    domain.KindTooLong,
			Message: fmt.Sprintf("email address must be at most %d characters", EmailMaxLen),
		}
	case !emailPattern.MatchString(email):
		return &domain.ValidationError{
			Field:   domain.FieldEmail,
			Kind:    domain.KindInvalidFormat,
			Message: "email address is not valid",
		}
	}
	return nil
}

// checkPassword applies the password length rules. Content beyond length is
// deliberately unconstrained.
func checkPassword(password string) *domain.ValidationError {
	switch n := utf8.RuneCountInString(password); {
	case n < PasswordMinLen:
		return &domain.ValidationError{
			Field:   domain.FieldPassword,
			Kind:    domain.KindTooShort,
			Message: fmt.Sprintf("password must be at least %d characters", PasswordMinLen),
		}
	case n > PasswordMaxLen:
		return &domain.ValidationError{
			Field:   domain.FieldPassword,
			Kind:    domain.KindTooLong,
			Message: fmt.Sprintf("password must be at most %d characters", PasswordMaxLen),
		}
	}
	return nil
}

func duplicateUsername(username string) *domain.ValidationError {
	return &domain.ValidationError{
		Field:   domain.FieldUsername,
		Kind:    domain.KindDuplicate,
		Message: fmt.Sprintf("username %q is already in use", username),
	}
}

func duplicateEmail(email string) *domain.ValidationError {
	return &domain.ValidationError{
		Field:   domain.FieldEmail,
		Kind:    domain.KindDuplicate,
		Message: fmt.Sprintf("email address %q is already in use", email),
	}
}
