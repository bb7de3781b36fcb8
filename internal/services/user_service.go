package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"messagebox/internal/domain/user"
	"messagebox/internal/repository"
	mb_errors "messagebox/pkg/errors"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type UpdateProfileInput struct {
	Name     *string
	Password *string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	if in.Email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", mb_errors.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return user.User{}, fmt.Errorf("%w: password must be at least %d characters", mb_errors.ErrInvalidInput, minPasswordLength)
	}

	email := NormalizeEmail(in.Email)

	name := in.Name
	if name == "" {
		name = localPart(email)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return user.User{}, err
	}

	return *newUser, nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return user.User{}, fmt.Errorf("%w: password must be at least %d characters", mb_errors.ErrInvalidInput, minPasswordLength)
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return user.User{}, err
		}
		u.PasswordHash = hash
	}

	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Delete(ctx, userID)
}

// NormalizeEmail lower-cases the domain portion and leaves the local part
// as submitted, so Test2@Example.com and Test2@example.com are the same
// account.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func localPart(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at]
}
