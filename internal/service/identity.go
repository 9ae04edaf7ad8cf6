package service

import (
	"context"

	"github.com/arknat/hr-backend/internal/identity"
)

// IdentityAdmin is the privileged surface of the identity provider that the
// services consume. *identity.AdminClient satisfies it.
type IdentityAdmin interface {
	CreateUser(ctx context.Context, params identity.CreateUserParams) (*identity.Account, error)
	GetUser(ctx context.Context, id string) (*identity.Account, error)
	UpdatePassword(ctx context.Context, id, password string) error
	DeleteUser(ctx context.Context, id string) error
}

// IdentityFactory builds a fresh privileged client for one operation. A new
// client is constructed for each call and discarded afterwards; services never
// hold a long-lived admin client.
type IdentityFactory func() IdentityAdmin
