package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize        = 16
	hashIterations  = 10_000
	derivedKeyBytes = 32
)

// GenerateSaltAndHash produces a fresh random salt and the derived hash
// for password. It is called exactly once per record, at registration;
// password updates reuse the stored salt through GenerateHashOnly.
func GenerateSaltAndHash(password string) ([]byte, string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to generate salt")
	}
	return salt, GenerateHashOnly(password, salt), nil
}

// GenerateHashOnly recomputes the hash for password with an existing
// salt. Deterministic: the same (password, salt) pair always yields the
// same hash.
func GenerateHashOnly(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, hashIterations, derivedKeyBytes, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// VerifyPassword reports whether password derives to expectedHash under
// salt. The comparison is constant time so callers do not leak hash
// prefixes through timing.
func VerifyPassword(password string, salt []byte, expectedHash string) bool {
	computed := GenerateHashOnly(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1
}
