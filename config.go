package credentials

import (
	"strings"

	"github.com/spf13/viper"
)

// Defaults applied when the environment leaves a value unset. The
// signing key default exists so the module runs out of the box, but it
// is public knowledge: every deployment must set JWT_SIGNING_KEY or any
// holder of this string can mint valid tokens.
const (
	DefaultSigningKey      = "DEFAULTJWTSECURITYKEY"
	DefaultIssuer          = "DEFAULTJWTISSUER"
	DefaultAudience        = "DEFAULTJWTAUDIENCE"
	DefaultTokenExpiration = 60
)

// EnvConfig is the environment backed Config implementation.
type EnvConfig struct {
	SigningKey      string `mapstructure:"JWT_SIGNING_KEY"`
	Issuer          string `mapstructure:"JWT_ISSUER"`
	Audience        string `mapstructure:"JWT_AUDIENCE"`
	TokenExpiration int    `mapstructure:"JWT_TOKEN_EXPIRATION"`
}

var _ Config = (*EnvConfig)(nil)

// LoadConfig reads an optional .env file, then the environment. Missing
// .env is fine; env vars win over file values.
func LoadConfig() (*EnvConfig, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("JWT_SIGNING_KEY", DefaultSigningKey)
	v.SetDefault("JWT_ISSUER", DefaultIssuer)
	v.SetDefault("JWT_AUDIENCE", DefaultAudience)
	v.SetDefault("JWT_TOKEN_EXPIRATION", DefaultTokenExpiration)

	cfg := &EnvConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string { return c.SigningKey }

func (c *EnvConfig) GetIssuer() string { return c.Issuer }

func (c *EnvConfig) GetAudience() []string {
	if c.Audience == "" {
		return nil
	}
	parts := strings.Split(c.Audience, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetTokenExpiration returns the token lifetime in minutes.
func (c *EnvConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return DefaultTokenExpiration
	}
	return c.TokenExpiration
}
