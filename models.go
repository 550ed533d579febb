package credentials

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted identity record. Email is the business key; at
// most one active record may exist per normalized email at any time.
// The salt is generated once at registration and survives password
// updates, so hash verification stays valid for the whole life of the
// record.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email        string    `bun:"email,notnull" json:"email,omitempty"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Salt         []byte    `bun:"salt,notnull" json:"-"`
	Active       bool      `bun:"active,notnull" json:"active"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at,omitempty"`
	CreatedBy    string    `bun:"created_by,notnull" json:"created_by,omitempty"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at,omitempty"`
	UpdatedBy    string    `bun:"updated_by,notnull" json:"updated_by,omitempty"`
}

// NewUser builds an active record with a fresh ID and audit fields set
// to requestedBy. Email must already be normalized.
func NewUser(email, passwordHash string, salt []byte, requestedBy string) *User {
	u := &User{
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
	}
	u.SetCreate(requestedBy)
	return u
}

// SetCreate assigns the identity and creation audit fields and marks the
// record active.
func (u *User) SetCreate(requestedBy string) {
	now := time.Now().UTC()
	u.ID = uuid.New()
	u.CreatedAt = now
	u.CreatedBy = requestedBy
	u.UpdatedAt = now
	u.UpdatedBy = requestedBy
	u.Active = true
}

// SetUpdate refreshes the update audit fields.
func (u *User) SetUpdate(requestedBy string) {
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedBy = requestedBy
}

// SetInactive soft deletes the record. There is no transition back; an
// inactive record is unreachable by every public operation.
func (u *User) SetInactive(requestedBy string) {
	u.SetUpdate(requestedBy)
	u.Active = false
}

// UpdatePassword replaces the stored hash, keeping the original salt,
// and refreshes the audit fields.
func (u *User) UpdatePassword(passwordHash, requestedBy string) {
	u.SetUpdate(requestedBy)
	u.PasswordHash = passwordHash
}
