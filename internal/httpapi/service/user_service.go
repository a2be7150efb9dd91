package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"reviewhub/internal/auth"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type UserService interface {
	List(ctx context.Context, search string, page dto.PageParams) (*dto.PaginatedResponse[dto.UserResponse], error)
	Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, username string) error
	UpdateMe(ctx context.Context, userID string, req dto.UpdateMeDTO) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page dto.PageParams) (*dto.PaginatedResponse[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	results := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginatedResponse(results, total), nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error) {
	if err := s.checkUnique(ctx, &req.Username, &req.Email, ""); err != nil {
		return nil, err
	}

	user := req.ToModel()
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost a race with a concurrent create; surface the same
			// field-scoped shape the pre-check produces.
			return nil, uniqueConflictErrors(err)
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, req.Username, req.Email, user.ID); err != nil {
		return nil, err
	}

	req.ApplyTo(user)
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, uniqueConflictErrors(err)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return s.userRepo.Delete(ctx, username)
}

func (s *userService) UpdateMe(ctx context.Context, userID string, req dto.UpdateMeDTO) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, req.Username, req.Email, user.ID); err != nil {
		return nil, err
	}

	req.ApplyTo(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, uniqueConflictErrors(err)
		}
		return nil, err
	}
	return user, nil
}

// uniqueConflictErrors shapes a lost uniqueness race like the pre-check
// would, naming the field whose constraint the store reported. An
// unrecognized constraint falls back to a non-field error.
func uniqueConflictErrors(err error) dto.FieldErrors {
	constraint := repository.UniqueViolationConstraint(err)
	switch {
	case strings.Contains(constraint, "email"):
		return dto.FieldErrors{"email": {"A user with that email already exists."}}
	case strings.Contains(constraint, "username"):
		return dto.FieldErrors{"username": {"A user with that username already exists."}}
	}
	return dto.FieldErrors{"non_field_errors": {"A user with this username or email already exists."}}
}

// checkUnique pre-checks username/email uniqueness to return field-scoped
// errors; the database constraint stays authoritative for races. selfID
// exempts the user being edited.
func (s *userService) checkUnique(ctx context.Context, username, email *string, selfID string) error {
	fe := dto.FieldErrors{}

	if username != nil {
		existing, err := s.userRepo.FindByUsername(ctx, *username)
		if err == nil && existing.ID != selfID {
			fe.Add("username", "A user with that username already exists.")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if email != nil {
		exists, err := s.userRepo.ExistsByEmail(ctx, *email)
		if err != nil {
			return err
		}
		// The email may already belong to the user being edited.
		if exists && !s.ownsEmail(ctx, selfID, *email) {
			fe.Add("email", "A user with that email already exists.")
		}
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}

func (s *userService) ownsEmail(ctx context.Context, selfID, email string) bool {
	if selfID == "" {
		return false
	}
	user, err := s.userRepo.FindByID(ctx, selfID)
	return err == nil && user.Email == email
}
