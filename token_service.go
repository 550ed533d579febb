package credentials

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// bearerScheme is the prefix stripped from Authorization header values.
const bearerScheme = "Bearer "

// Claims is the token payload: a single identity assertion plus the
// registered claim set.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenService signs and verifies bearer tokens. Stateless and safe for
// concurrent use.
type TokenService struct {
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

// NewTokenService creates a TokenService from cfg. Token expiration is
// in minutes.
func NewTokenService(cfg Config, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenService{
		signingKey:      []byte(cfg.GetSigningKey()),
		tokenExpiration: cfg.GetTokenExpiration(),
		issuer:          cfg.GetIssuer(),
		audience:        cfg.GetAudience(),
		logger:          logger,
	}
}

// Issue builds a signed token asserting email. Expiry is fixed at the
// configured lifetime from now.
func (ts *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Minute)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies a raw token string: signature, expiry,
// and, when configured, issuer and audience.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(err, errors.CategoryAuth, "token expired").
				WithCode(errors.CodeUnauthorized).
				WithTextCode("TOKEN_EXPIRED")
		}
		return nil, errors.Wrap(err, errors.CategoryAuth, "malformed token").
			WithCode(errors.CodeUnauthorized).
			WithTextCode(TextCodeTokenMalformed)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// ExtractClaim strips the bearer scheme from an Authorization header
// value and returns the email claim of the remaining token WITHOUT
// verifying signature or expiry. Only ever call it on header values
// that already passed the auth middleware, or on anonymous endpoints
// where no identity is asserted.
func ExtractClaim(authorization string) (string, error) {
	if len(authorization) <= len(bearerScheme) {
		return "", ErrTokenMalformed
	}

	raw := authorization[len(bearerScheme):]

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return "", errors.Wrap(err, errors.CategoryAuth, "malformed token").
			WithCode(errors.CodeUnauthorized).
			WithTextCode(TextCodeTokenMalformed)
	}

	return claims.Email, nil
}
