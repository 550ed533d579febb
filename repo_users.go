package credentials

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the record store consumed by the lifecycle service. FindOne
// only ever sees active records; DeleteOne is an update flipping the
// active flag, never a physical delete.
//
// No atomicity is guaranteed between FindOne and InsertOne: two
// concurrent registrations of the same email can race. A storage level
// uniqueness constraint on (email, active) is the recommended
// mitigation when that matters.
type Users interface {
	repository.Repository[*User]

	FindOne(ctx context.Context, email string) (*User, error)
	FindOneTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	InsertOne(ctx context.Context, record *User) error
	InsertOneTx(ctx context.Context, tx bun.IDB, record *User) error
	UpdateOne(ctx context.Context, record *User) error
	UpdateOneTx(ctx context.Context, tx bun.IDB, record *User) error
	DeleteOne(ctx context.Context, record *User, requestedBy string) error
	DeleteOneTx(ctx context.Context, tx bun.IDB, record *User, requestedBy string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

// NewUsersRepository returns the bun backed Users store.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// FindOne returns the active record for email, or nil when none exists.
// Inactive records are invisible here; "never existed" and "deactivated"
// cannot be told apart through this method.
func (a *users) FindOne(ctx context.Context, email string) (*User, error) {
	return a.FindOneTx(ctx, a.db, email)
}

func (a *users) FindOneTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Where("?TableAlias.active = ?", true).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

func (a *users) InsertOne(ctx context.Context, record *User) error {
	return a.InsertOneTx(ctx, a.db, record)
}

func (a *users) InsertOneTx(ctx context.Context, tx bun.IDB, record *User) error {
	_, err := a.Repository.CreateTx(ctx, tx, record)
	return err
}

func (a *users) UpdateOne(ctx context.Context, record *User) error {
	return a.UpdateOneTx(ctx, a.db, record)
}

func (a *users) UpdateOneTx(ctx context.Context, tx bun.IDB, record *User) error {
	_, err := a.Repository.UpdateTx(ctx, tx, record,
		repository.UpdateByID(record.ID.String()),
	)
	return err
}

// DeleteOne soft deletes: the row stays, active flips to false, audit
// fields record who asked.
func (a *users) DeleteOne(ctx context.Context, record *User, requestedBy string) error {
	return a.DeleteOneTx(ctx, a.db, record, requestedBy)
}

func (a *users) DeleteOneTx(ctx context.Context, tx bun.IDB, record *User, requestedBy string) error {
	record.SetInactive(requestedBy)

	// NOTE: the ORM update skips zero valued columns, which would drop
	// the active=false write. Raw SQL it is.
	_, err := tx.NewRaw(`
		UPDATE "users" AS "usr"
		SET
			"active" = FALSE,
			"updated_at" = ?,
			"updated_by" = ?
		WHERE
			("usr".id = ?)
			AND "usr"."active" = TRUE;
	`, record.UpdatedAt, record.UpdatedBy, record.ID).Exec(ctx)

	return err
}
