package credentials

import (
	"regexp"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Single @, non-empty local part, dotted domain. Normalization to lower
// case is the caller's job, not the validator's.
var emailShape = regexp.MustCompile(`^[^@\s]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)

const (
	passwordMinLen = 8
	passwordMaxLen = 16
)

// ValidateEmailFormat checks the email shape without normalizing or
// touching storage.
func ValidateEmailFormat(value string) error {
	err := validation.Validate(value,
		validation.Required,
		validation.Match(emailShape),
	)
	if err != nil {
		return ErrInvalidEmailFormat
	}
	return nil
}

// ValidatePasswordFormat requires length in [8,16] with at least one
// lower case letter, one upper case letter, and one digit. No special
// character requirement, no deny list.
func ValidatePasswordFormat(value string) error {
	err := validation.Validate(value,
		validation.Required,
		validation.Length(passwordMinLen, passwordMaxLen),
		validation.By(requireCharacterClasses),
	)
	if err != nil {
		return ErrInvalidPasswordFormat
	}
	return nil
}

func requireCharacterClasses(value any) error {
	s, _ := value.(string)
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return ErrInvalidPasswordFormat
	}
	return nil
}
