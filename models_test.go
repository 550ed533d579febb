package credentials_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-credentials"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	salt := []byte("0123456789abcdef")
	user := credentials.NewUser("example@template.com", "hash", salt, "example@template.com")

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "example@template.com", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, salt, user.Salt)
	assert.True(t, user.Active)
	assert.Equal(t, "example@template.com", user.CreatedBy)
	assert.Equal(t, "example@template.com", user.UpdatedBy)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.WithinDuration(t, time.Now().UTC(), user.CreatedAt, time.Minute)
}

func TestSetCreateAssignsFreshIdentity(t *testing.T) {
	a := &credentials.User{}
	b := &credentials.User{}
	a.SetCreate("example@template.com")
	b.SetCreate("example@template.com")

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.Active)
}

func TestSetInactive(t *testing.T) {
	user := credentials.NewUser("example@template.com", "hash", []byte("salt"), "example@template.com")
	createdAt := user.CreatedAt

	time.Sleep(time.Millisecond)
	user.SetInactive("example@template.com")

	assert.False(t, user.Active)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.True(t, user.UpdatedAt.After(createdAt))
}

func TestUserUpdatePassword(t *testing.T) {
	salt := []byte("0123456789abcdef")
	user := credentials.NewUser("example@template.com", "hash", salt, "example@template.com")
	id := user.ID

	time.Sleep(time.Millisecond)
	user.UpdatePassword("new-hash", "example@template.com")

	require.Equal(t, "new-hash", user.PasswordHash)
	assert.Equal(t, salt, user.Salt)
	assert.Equal(t, id, user.ID)
	assert.True(t, user.Active)
	assert.True(t, user.UpdatedAt.After(user.CreatedAt))
}
