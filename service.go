package credentials

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
)

// RegistrationMessage is the Register payload.
type RegistrationMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticationMessage is the Authenticate payload.
type AuthenticationMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// InactivationMessage is the Inactivate payload.
type InactivationMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordMessage is the UpdatePassword payload.
type UpdatePasswordMessage struct {
	Email       string `json:"email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UserStore is the minimal store surface the lifecycle service needs.
// Users satisfies it.
type UserStore interface {
	FindOne(ctx context.Context, email string) (*User, error)
	InsertOne(ctx context.Context, record *User) error
	UpdateOne(ctx context.Context, record *User) error
	DeleteOne(ctx context.Context, record *User, requestedBy string) error
}

// Service orchestrates the credential lifecycle against the user
// store. Every operation runs the same sequence: authorization, format
// validation, active-record lookup, password verification, mutation.
// The order matters; do not reshuffle it. requestedBy is the caller's
// verified identity claim, empty for anonymous calls.
//
// Operations on the same record are not serialized here; concurrent
// mutations can race (see Users).
type Service struct {
	users  UserStore
	tokens *TokenService
	logger Logger
}

// NewService returns a lifecycle service backed by users and tokens.
func NewService(users UserStore, tokens *TokenService) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *Service) WithLogger(logger Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register creates an active record for the email. Anonymous only: an
// authenticated caller may not register anyone, including themselves.
func (s *Service) Register(ctx context.Context, msg RegistrationMessage, requestedBy string) error {
	email := strings.ToLower(msg.Email)

	if strings.TrimSpace(requestedBy) != "" {
		return errors.New("authenticated user can not request registration", errors.CategoryAuthz).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(TextCodeUnauthorized).
			WithMetadata(map[string]any{"requested_by": requestedBy})
	}

	if err := validateCredentials(email, msg.Password); err != nil {
		return err
	}

	existing, err := s.users.FindOne(ctx, email)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}
	if existing != nil {
		return errors.New("user "+email+" already registered", errors.CategoryConflict).
			WithCode(errors.CodeConflict).
			WithTextCode(TextCodeUserAlreadyRegistered).
			WithMetadata(map[string]any{"email": email})
	}

	salt, hash, err := GenerateSaltAndHash(msg.Password)
	if err != nil {
		return err
	}

	if err := s.users.InsertOne(ctx, NewUser(email, hash, salt, email)); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
	}

	s.logger.Info("user registered", "email", email)

	return nil
}

// Authenticate verifies the password for an active record and returns a
// bearer scheme token string. Read only; no record is mutated.
func (s *Service) Authenticate(ctx context.Context, msg AuthenticationMessage, requestedBy string) (string, error) {
	email := strings.ToLower(msg.Email)

	if strings.TrimSpace(requestedBy) != "" && strings.ToLower(requestedBy) != email {
		return "", unauthorizedMismatch(requestedBy, email)
	}

	if err := validateCredentials(email, msg.Password); err != nil {
		return "", err
	}

	user, err := s.findActive(ctx, email)
	if err != nil {
		return "", err
	}

	if !VerifyPassword(msg.Password, user.Salt, user.PasswordHash) {
		return "", invalidPassword(email)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", err
	}

	return bearerScheme + token, nil
}

// Inactivate soft deletes the record after re-verifying the password.
// There is no way back: the email becomes free to register anew and the
// old record stays unreachable forever.
func (s *Service) Inactivate(ctx context.Context, msg InactivationMessage, requestedBy string) error {
	email := strings.ToLower(msg.Email)

	if strings.ToLower(requestedBy) != email {
		return unauthorizedMismatch(requestedBy, email)
	}

	if err := validateCredentials(email, msg.Password); err != nil {
		return err
	}

	user, err := s.findActive(ctx, email)
	if err != nil {
		return err
	}

	if !VerifyPassword(msg.Password, user.Salt, user.PasswordHash) {
		return invalidPassword(email)
	}

	if err := s.users.DeleteOne(ctx, user, email); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to inactivate user")
	}

	s.logger.Info("user inactivated", "email", email)

	return nil
}

// UpdatePassword replaces the stored hash after verifying the old
// password. The record keeps its original salt; only the hash and the
// audit fields change. A new password equal to the old one fails before
// any storage lookup.
func (s *Service) UpdatePassword(ctx context.Context, msg UpdatePasswordMessage, requestedBy string) error {
	email := strings.ToLower(msg.Email)

	if strings.ToLower(requestedBy) != email {
		return unauthorizedMismatch(requestedBy, email)
	}

	if err := validateCredentials(email, msg.OldPassword); err != nil {
		return err
	}
	if err := ValidatePasswordFormat(msg.NewPassword); err != nil {
		return err
	}

	if msg.OldPassword == msg.NewPassword {
		return errors.New("invalid password", errors.CategoryAuth).
			WithCode(errors.CodeBadRequest).
			WithTextCode(TextCodeInvalidPassword).
			WithMetadata(map[string]any{"email": email, "reason": "new password equals old password"})
	}

	user, err := s.findActive(ctx, email)
	if err != nil {
		return err
	}

	if !VerifyPassword(msg.OldPassword, user.Salt, user.PasswordHash) {
		return invalidPassword(email)
	}

	user.UpdatePassword(GenerateHashOnly(msg.NewPassword, user.Salt), email)

	if err := s.users.UpdateOne(ctx, user); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update password")
	}

	s.logger.Info("user password updated", "email", email)

	return nil
}

func (s *Service) findActive(ctx context.Context, email string) (*User, error) {
	user, err := s.users.FindOne(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}
	if user == nil {
		return nil, errors.New("user "+email+" not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound).
			WithTextCode(TextCodeUserNotFound).
			WithMetadata(map[string]any{"email": email})
	}
	return user, nil
}

func validateCredentials(email, password string) error {
	if err := ValidateEmailFormat(email); err != nil {
		return err
	}
	return ValidatePasswordFormat(password)
}

func unauthorizedMismatch(requestedBy, email string) error {
	return errors.New("authenticated email "+requestedBy+" different from request email "+email, errors.CategoryAuthz).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(TextCodeUnauthorized).
		WithMetadata(map[string]any{"requested_by": requestedBy, "email": email})
}

func invalidPassword(email string) error {
	return errors.New("invalid password", errors.CategoryAuth).
		WithCode(errors.CodeBadRequest).
		WithTextCode(TextCodeInvalidPassword).
		WithMetadata(map[string]any{"email": email})
}
