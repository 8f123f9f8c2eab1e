package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidateClaims(t *testing.T) {
	tests := []struct {
		name     string
		claims   jwt.MapClaims
		clientID string
		wantErr  bool
	}{
		{
			name:     "https issuer and matching audience",
			claims:   jwt.MapClaims{"iss": "https://accounts.google.com", "aud": "client-1"},
			clientID: "client-1",
		},
		{
			name:     "bare issuer form",
			claims:   jwt.MapClaims{"iss": "accounts.google.com", "aud": "client-1"},
			clientID: "client-1",
		},
		{
			name:     "foreign issuer",
			claims:   jwt.MapClaims{"iss": "https://evil.example.com", "aud": "client-1"},
			clientID: "client-1",
			wantErr:  true,
		},
		{
			name:    "missing issuer",
			claims:  jwt.MapClaims{"aud": "client-1"},
			wantErr: true,
		},
		{
			name:     "audience mismatch",
			claims:   jwt.MapClaims{"iss": "https://accounts.google.com", "aud": "someone-else"},
			clientID: "client-1",
			wantErr:  true,
		},
		{
			name:     "no client id configured skips audience check",
			claims:   jwt.MapClaims{"iss": "https://accounts.google.com", "aud": "whatever"},
			clientID: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaims(tt.claims, tt.clientID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileFromClaims(t *testing.T) {
	p := ProfileFromClaims(jwt.MapClaims{
		"email":   "ann@x.com",
		"name":    "Ann",
		"picture": "https://lh3.googleusercontent.com/p",
		"sub":     "108123",
	})
	assert.Equal(t, "ann@x.com", p.Email)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/p", p.Picture)
	assert.Equal(t, "108123", p.GoogleID)
}

func TestProfileFromClaims_MissingAndWrongTypes(t *testing.T) {
	p := ProfileFromClaims(jwt.MapClaims{"email": "ann@x.com", "sub": 42})
	assert.Equal(t, "ann@x.com", p.Email)
	assert.Empty(t, p.Name)
	assert.Empty(t, p.GoogleID)
}
