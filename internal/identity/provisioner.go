// Package identity talks to the external identity provider that owns user
// logins. The service never stores credentials itself.
package identity

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken    = errors.New("identity: email already registered")
	ErrUserNotFound  = errors.New("identity: user not found")
	ErrNotConfigured = errors.New("identity: provider not configured")
)

type NewUser struct {
	Email    string
	Password string
	FullName string
}

type User struct {
	ID    string
	Email string
}

//go:generate mockgen -source=provisioner.go -destination=mock/provisioner_mock.go -package=mock
type Provisioner interface {
	CreateUser(ctx context.Context, u NewUser) (User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// Noop is used when no admin credentials are configured. Creating users is
// refused; deletes succeed so that local rows can still be cleaned up.
type Noop struct{}

func (Noop) CreateUser(context.Context, NewUser) (User, error) {
	return User{}, ErrNotConfigured
}

func (Noop) DeleteUser(context.Context, string) error {
	return nil
}
