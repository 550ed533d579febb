package credentials

import (
	"github.com/goliatone/go-errors"
)

// Text codes exposed alongside errors so API clients can branch without
// string matching on messages.
const (
	TextCodeInvalidEmailFormat    = "INVALID_EMAIL_FORMAT"
	TextCodeInvalidPasswordFormat = "INVALID_PASSWORD_FORMAT"
	TextCodeUnauthorized          = "UNAUTHORIZED"
	TextCodeUserNotFound          = "USER_NOT_FOUND"
	TextCodeUserAlreadyRegistered = "USER_ALREADY_REGISTERED"
	TextCodeInvalidPassword       = "INVALID_PASSWORD"
	TextCodeTokenMalformed        = "TOKEN_MALFORMED"
)

// ErrInvalidEmailFormat rejects input before any storage access.
var ErrInvalidEmailFormat = errors.New("invalid email format", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeInvalidEmailFormat)

// ErrInvalidPasswordFormat rejects input before any storage access.
var ErrInvalidPasswordFormat = errors.New("invalid password format", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeInvalidPasswordFormat)

// ErrUnauthorized means the claimed identity does not match the target
// resource, or an authenticated caller attempted an anonymous only
// operation.
var ErrUnauthorized = errors.New("unauthorized access", errors.CategoryAuthz).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeUnauthorized)

// ErrUserNotFound covers both "never existed" and "already inactive";
// the two are indistinguishable on purpose.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrUserAlreadyRegistered means an active record already exists for the
// email.
var ErrUserAlreadyRegistered = errors.New("user already registered", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode(TextCodeUserAlreadyRegistered)

// ErrInvalidPassword covers both a hash mismatch and a password update
// where the new password equals the old one. Callers that need to tell
// the two apart can inspect the error metadata.
var ErrInvalidPassword = errors.New("invalid password", errors.CategoryAuth).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeInvalidPassword)

// ErrTokenMalformed means the Authorization header was present but not
// decodable as a token.
var ErrTokenMalformed = errors.New("malformed token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// IsNotFound reports whether err is the not-found kind.
func IsNotFound(err error) bool {
	return hasTextCode(err, TextCodeUserNotFound)
}

// IsUnauthorized reports whether err is the unauthorized kind.
func IsUnauthorized(err error) bool {
	return hasTextCode(err, TextCodeUnauthorized)
}

// IsInvalidPassword reports whether err is the invalid-password kind.
func IsInvalidPassword(err error) bool {
	return hasTextCode(err, TextCodeInvalidPassword)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
