package services

import (
	"context"

	"messagebox/internal/domain/message"
	"messagebox/internal/domain/user"
	mb_errors "messagebox/pkg/errors"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	usersByID    map[uuid.UUID]user.User
	usersByEmail map[string]uuid.UUID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[uuid.UUID]user.User),
		usersByEmail: make(map[string]uuid.UUID),
	}
}

func (m *mockUserRepo) Create(_ context.Context, u *user.User) error {
	if _, exists := m.usersByEmail[u.Email]; exists {
		return mb_errors.ErrAlreadyExists
	}
	m.usersByID[u.ID] = *u
	m.usersByEmail[u.Email] = u.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return user.User{}, mb_errors.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return user.User{}, mb_errors.ErrNotFound
	}
	return m.usersByID[id], nil
}

func (m *mockUserRepo) Update(_ context.Context, u user.User) error {
	old, ok := m.usersByID[u.ID]
	if !ok {
		return mb_errors.ErrNotFound
	}
	if old.Email != u.Email {
		delete(m.usersByEmail, old.Email)
		m.usersByEmail[u.Email] = u.ID
	}
	m.usersByID[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := m.usersByID[id]
	if !ok {
		return mb_errors.ErrNotFound
	}
	delete(m.usersByEmail, u.Email)
	delete(m.usersByID, id)
	return nil
}

type mockMessageRepo struct {
	messages   map[uuid.UUID]message.Message
	lastFilter *message.Filter
	listResult []message.Message
	listCalls  int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{messages: make(map[uuid.UUID]message.Message)}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *message.Message) error {
	m.messages[msg.ID] = *msg
	return nil
}

func (m *mockMessageRepo) GetByOwner(_ context.Context, id, ownerID uuid.UUID) (message.Message, error) {
	msg, ok := m.messages[id]
	if !ok || msg.OwnerID != ownerID {
		return message.Message{}, mb_errors.ErrNotFound
	}
	return msg, nil
}

func (m *mockMessageRepo) Update(_ context.Context, msg message.Message) error {
	if _, ok := m.messages[msg.ID]; !ok {
		return mb_errors.ErrNotFound
	}
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockMessageRepo) DeleteByOwner(_ context.Context, id, ownerID uuid.UUID) error {
	msg, ok := m.messages[id]
	if !ok || msg.OwnerID != ownerID {
		return mb_errors.ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

func (m *mockMessageRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, f message.Filter) ([]message.Message, error) {
	m.listCalls++
	m.lastFilter = &f
	if m.listResult != nil {
		return m.listResult, nil
	}
	var out []message.Message
	for _, msg := range m.messages {
		if msg.OwnerID == ownerID {
			out = append(out, msg)
		}
	}
	return out, nil
}
