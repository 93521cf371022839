package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"restaurant-backoffice/internal/domain"
	"restaurant-backoffice/internal/repository"
)

type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     string // optional; defaults to USER
}

type UpdateUserRequest struct {
	Name  string
	Email string
	Role  string
}

type UserServiceInterface interface {
	Create(ctx context.Context, req CreateUserRequest) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (domain.User, error)
	Delete(ctx context.Context, id int64) error
	ProvisionDefaultAdmin(ctx context.Context, name, email, password string) error
}

type UserService struct {
	users repository.UserRepositoryInterface
}

func NewUserService(users repository.UserRepositoryInterface) UserServiceInterface {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	if req.Name == "" {
		return domain.User{}, domain.InvalidArgument("user", "name is required")
	}
	if req.Email == "" {
		return domain.User{}, domain.InvalidArgument("user", "email is required")
	}
	if req.Password == "" {
		return domain.User{}, domain.InvalidArgument("user", "password is required")
	}
	role := domain.RoleUser
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			return domain.User{}, domain.InvalidArgument("user", "unknown role "+req.Role)
		}
		role = parsed
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.Create(ctx, domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	})
}

func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		role, ok := domain.ParseRole(req.Role)
		if !ok {
			return domain.User{}, domain.InvalidArgument("user", "unknown role "+req.Role)
		}
		user.Role = role
	}
	return s.users.Update(ctx, user)
}

// Delete removes the user together with its dependents in one atomic unit:
// tables the user reserved become free, authored reviews lose their owner
// reference, the user's orders go away. A failure in any step leaves the
// user record in place.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.DeleteCascade(ctx, id)
}

// ProvisionDefaultAdmin is the explicit bootstrap step invoked once at
// process start. It is idempotent: an existing account with the given email
// is left untouched.
func (s *UserService) ProvisionDefaultAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	return err
}
