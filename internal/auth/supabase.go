// Package auth verifies bearer tokens issued by a Supabase project.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// ErrEmptyToken is returned by Verify when no token is given.
var ErrEmptyToken = errors.New("empty token")

// lookupFunc resolves a token to a user id.
type lookupFunc func(token string) (string, error)

// SupabaseVerifier checks access tokens against the Supabase auth API.
type SupabaseVerifier struct {
	lookup lookupFunc
}

// NewSupabaseVerifier builds a verifier for the project at url, using key as
// the API key.
func NewSupabaseVerifier(url, key string) (*SupabaseVerifier, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("auth.NewSupabaseVerifier: %w", err)
	}
	return &SupabaseVerifier{
		lookup: func(token string) (string, error) {
			// GetUser has no context parameter.
			user, err := client.Auth.WithToken(token).GetUser()
			if err != nil {
				return "", err
			}
			return user.ID.String(), nil
		},
	}, nil
}

// Verify returns the id of the user that owns token.
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("auth.SupabaseVerifier.Verify: %w", ErrEmptyToken)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("auth.SupabaseVerifier.Verify: %w", err)
	}
	id, err := v.lookup(token)
	if err != nil {
		return "", fmt.Errorf("auth.SupabaseVerifier.Verify: %w", err)
	}
	return id, nil
}
