package domain

// Field names the registration input a validation failure refers to. Front
// ends key on it to refocus the offending widget.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// Kind tags the rule a value broke.
type Kind string

const (
	KindTooShort      Kind = "too_short"
	KindTooLong       Kind = "too_long"
	KindInvalidChars  Kind = "invalid_chars"
	KindInvalidFormat Kind = "invalid_format"
	KindDuplicate     Kind = "duplicate"
)

// ValidationError is a recoverable registration failure. Message is surfaced
// verbatim to the end user.
type ValidationError struct {
	Field   Field
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes two validation errors comparable by field and kind under
// errors.Is, regardless of message wording.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Field == t.Field && e.Kind == t.Kind
}
