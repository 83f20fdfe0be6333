package services

import (
	"context"

	"github.com/greenpress/apiserver/types"
)

// UserRepository defines persistence operations for staff accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateRole(ctx context.Context, username, role string) (types.User, error)
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Create inserts a new account, defaulting the role to writer.
func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	if user.Role == "" {
		user.Role = types.RoleWriter
	}
	return s.repo.Create(ctx, user)
}

// PromoteRole changes an account's role. Reserved for the administrative
// CLI; there is deliberately no HTTP route for it.
func (s *UserService) PromoteRole(ctx context.Context, username, role string) (types.User, error) {
	return s.repo.UpdateRole(ctx, username, role)
}
