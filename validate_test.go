package credentials_test

import (
	"testing"

	"github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmailFormat(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:  "valid email",
			email: "example@template.com",
		},
		{
			name:  "subdomain",
			email: "user@mail.template.com",
		},
		{
			name:  "plus tag in local part",
			email: "user+tag@template.com",
		},
		{
			name:    "empty",
			email:   "",
			wantErr: true,
		},
		{
			name:    "missing at sign",
			email:   "example.template.com",
			wantErr: true,
		},
		{
			name:    "two at signs",
			email:   "example@foo@template.com",
			wantErr: true,
		},
		{
			name:    "empty local part",
			email:   "@template.com",
			wantErr: true,
		},
		{
			name:    "no dot in domain",
			email:   "example@template",
			wantErr: true,
		},
		{
			name:    "trailing dot in domain",
			email:   "example@template.com.",
			wantErr: true,
		},
		{
			name:    "whitespace in local part",
			email:   "ex ample@template.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := credentials.ValidateEmailFormat(tt.email)

			if tt.wantErr {
				assert.ErrorIs(t, err, credentials.ErrInvalidEmailFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePasswordFormat(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid minimum length",
			password: "Abcdef12",
		},
		{
			name:     "valid maximum length",
			password: "Abcdefghijklmn12",
		},
		{
			name:     "symbols allowed but not required",
			password: "Abcdef1!",
		},
		{
			name:     "empty",
			password: "",
			wantErr:  true,
		},
		{
			name:     "too short",
			password: "Abcde12",
			wantErr:  true,
		},
		{
			name:     "too long",
			password: "Abcdefghijklmno12",
			wantErr:  true,
		},
		{
			name:     "no upper case",
			password: "abcdef12",
			wantErr:  true,
		},
		{
			name:     "no lower case",
			password: "ABCDEF12",
			wantErr:  true,
		},
		{
			name:     "no digit",
			password: "Abcdefgh",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := credentials.ValidatePasswordFormat(tt.password)

			if tt.wantErr {
				assert.ErrorIs(t, err, credentials.ErrInvalidPasswordFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}
