// Package service contains application services orchestrating validation,
// authorization and repository access.
package service

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"
)

const minPasswordLen = 8

// UserService handles registration, authentication and superuser-gated
// user management.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries fields for self-service registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// CreateUserInput carries fields for superuser-driven user creation.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	Superuser bool
}

// UpdateUserInput carries optional fields for user updates. Nil fields are
// left untouched.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	Password  *string
	Superuser *bool
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) validateNewUser(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return models.NewValidationError("Username, email, and password are required")
	}
	if len(password) < minPasswordLen {
		return models.NewValidationError("Password must be at least 8 characters")
	}
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewValidationError("Username already taken")
	}
	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewValidationError("User with this email already exists")
	}
	return nil
}

// Register creates a regular (non-superuser) account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.validateNewUser(ctx, in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a username/password pair to a user. Unknown,
// soft-deleted and wrong-password cases all fail identically so callers
// cannot probe for account existence.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.Password) {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetSelf returns the acting principal's own account.
func (s *UserService) GetSelf(ctx context.Context, actor policy.Principal) (*models.User, error) {
	return s.userRepo.GetByID(ctx, actor.ID)
}

// CreateUser creates an account on behalf of a superuser, optionally with
// superuser privileges.
func (s *UserService) CreateUser(ctx context.Context, actor policy.Principal, in CreateUserInput) (*models.User, error) {
	action := policy.ActionManageUsers
	if in.Superuser {
		action = policy.ActionPromoteUser
	}
	if err := policy.Authorize(actor, action, 0); err != nil {
		return nil, err
	}
	if err := s.validateNewUser(ctx, in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    hashed,
		IsSuperuser: in.Superuser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID. Superuser-only; includeDeleted lifts the
// soft-delete predicate and is additionally gated.
func (s *UserService) GetUser(ctx context.Context, actor policy.Principal, id uint, includeDeleted bool) (*models.User, error) {
	if err := policy.Authorize(actor, policy.ActionManageUsers, 0); err != nil {
		return nil, err
	}
	if includeDeleted {
		if err := policy.Authorize(actor, policy.ActionViewDeleted, 0); err != nil {
			return nil, err
		}
		return s.userRepo.GetByIDAny(ctx, id)
	}
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns a page of users. Superuser-only.
func (s *UserService) ListUsers(ctx context.Context, actor policy.Principal, p repository.Pagination, includeDeleted bool) (*repository.Page[models.User], error) {
	if err := policy.Authorize(actor, policy.ActionManageUsers, 0); err != nil {
		return nil, err
	}
	if includeDeleted {
		if err := policy.Authorize(actor, policy.ActionViewDeleted, 0); err != nil {
			return nil, err
		}
		return s.userRepo.ListAny(ctx, p)
	}
	return s.userRepo.List(ctx, p)
}

// UpdateUser applies the given changes to a user account. Superuser-only;
// changing the superuser flag is gated separately.
func (s *UserService) UpdateUser(ctx context.Context, actor policy.Principal, id uint, in UpdateUserInput) (*models.User, error) {
	action := policy.ActionManageUsers
	if in.Superuser != nil {
		action = policy.ActionPromoteUser
	}
	if err := policy.Authorize(actor, action, 0); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if *in.Username == "" {
			return nil, models.NewValidationError("Username cannot be empty")
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, models.NewValidationError("Email cannot be empty")
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, models.NewValidationError("Password must be at least 8 characters")
		}
		hashed, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = hashed
	}
	if in.Superuser != nil {
		user.IsSuperuser = *in.Superuser
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// DeleteUser soft-deletes a user account. Superuser-only.
func (s *UserService) DeleteUser(ctx context.Context, actor policy.Principal, id uint) error {
	if err := policy.Authorize(actor, policy.ActionDeleteUser, 0); err != nil {
		return err
	}
	return s.userRepo.SoftDelete(ctx, id)
}
