package repository

import (
	"context"

	"messagebox/internal/domain/message"
	"messagebox/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository defines persistence operations for messages. Every
// point operation takes the owner id and matches on both columns, so a
// foreign record and a missing record are indistinguishable to callers.
type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetByOwner(ctx context.Context, id, ownerID uuid.UUID) (message.Message, error)
	Update(ctx context.Context, m message.Message) error
	DeleteByOwner(ctx context.Context, id, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f message.Filter) ([]message.Message, error)
}
