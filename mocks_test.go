package credentials_test

import (
	"context"

	"github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements credentials.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindOne(ctx context.Context, email string) (*credentials.User, error) {
	args := m.Called(ctx, email)
	var user *credentials.User
	if v := args.Get(0); v != nil {
		user = v.(*credentials.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) InsertOne(ctx context.Context, record *credentials.User) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUserStore) UpdateOne(ctx context.Context, record *credentials.User) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUserStore) DeleteOne(ctx context.Context, record *credentials.User, requestedBy string) error {
	args := m.Called(ctx, record, requestedBy)
	return args.Error(0)
}

// testConfig implements credentials.Config
type testConfig struct {
	signingKey      string
	issuer          string
	audience        []string
	tokenExpiration int
}

func (c testConfig) GetSigningKey() string   { return c.signingKey }
func (c testConfig) GetIssuer() string       { return c.issuer }
func (c testConfig) GetAudience() []string   { return c.audience }
func (c testConfig) GetTokenExpiration() int { return c.tokenExpiration }

func newTestConfig() testConfig {
	return testConfig{
		signingKey:      "test-signing-key",
		issuer:          "test-issuer",
		audience:        []string{"test:audience"},
		tokenExpiration: 60,
	}
}
