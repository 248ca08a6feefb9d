package session

import (
	"context"

	authmodels "festdraft/internal/auth/models"
	"festdraft/internal/client/api"
)

// Authenticator is the remote half of the gate. Calls that need a
// credential take it explicitly so a reply can be matched to the token
// that produced it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*authmodels.LoginResult, error)
	Profile(ctx context.Context, token string) (*authmodels.UserProfile, error)
	Logout(ctx context.Context, token string) error
}

// FromClient adapts an API client.
func FromClient(c *api.Client) Authenticator {
	return clientAuth{c: c}
}

type clientAuth struct {
	c *api.Client
}

func (a clientAuth) Login(ctx context.Context, email, password string) (*authmodels.LoginResult, error) {
	return a.c.Login(ctx, email, password)
}

func (a clientAuth) Profile(ctx context.Context, token string) (*authmodels.UserProfile, error) {
	return a.c.WithToken(token).Profile(ctx)
}

func (a clientAuth) Logout(ctx context.Context, token string) error {
	_, err := a.c.WithToken(token).Logout(ctx)
	return err
}
