package repository

import (
	"context"
	"strings"

	"blood-connect/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id string, patch func(*domain.User)) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	GetByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error)
}

type userRepository struct {
	users *Collection[domain.User]
}

func NewUserRepository(store RecordStore) UserRepository {
	return &userRepository{
		users: NewCollection(store, CollectionUsers, func(u *domain.User) string { return u.ID }),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.users.Append(ctx, *user)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users.Find(ctx, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.users.FindWhere(ctx, func(u *domain.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.GetByEmail(ctx, email)
	return user != nil, err
}

// Update returns nil when the user does not exist.
func (r *userRepository) Update(ctx context.Context, id string, patch func(*domain.User)) (*domain.User, error) {
	return r.users.UpdateWhere(ctx,
		func(u *domain.User) bool { return u.ID == id },
		func(u *domain.User) error {
			patch(u)
			return nil
		})
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return r.users.GetAll(ctx)
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	return r.GetByRoles(ctx, []domain.UserRole{role})
}

func (r *userRepository) GetByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error) {
	if len(roles) == 0 {
		return []domain.User{}, nil
	}

	all, err := r.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	users := []domain.User{}
	for _, u := range all {
		for _, role := range roles {
			if u.Role == role {
				users = append(users, u)
				break
			}
		}
	}
	return users, nil
}
