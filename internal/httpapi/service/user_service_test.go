package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
)

func TestCreateUser_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	password := "password123"
	role := models.RoleModerator

	mockUserRepo.On("FindByUsername", mock.Anything, "newmod").
		Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("ExistsByEmail", mock.Anything, "mod@example.com").Return(false, nil)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := userService.Create(context.Background(), dto.CreateUserDTO{
		Username: "newmod",
		Email:    "mod@example.com",
		Role:     &role,
		Password: &password,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
	// Stored as a bcrypt hash, never plaintext.
	assert.NotEqual(t, password, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)))
	mockUserRepo.AssertExpectations(t)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	existing := &models.User{ID: "existing-id", Username: "taken"}
	mockUserRepo.On("FindByUsername", mock.Anything, "taken").Return(existing, nil)
	mockUserRepo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)

	user, err := userService.Create(context.Background(), dto.CreateUserDTO{
		Username: "taken",
		Email:    "new@example.com",
	})

	assert.Nil(t, user)
	var fe dto.FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "username")
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "fresh").
		Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	user, err := userService.Create(context.Background(), dto.CreateUserDTO{
		Username: "fresh",
		Email:    "taken@example.com",
	})

	assert.Nil(t, user)
	var fe dto.FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "email")
}

func TestCreateUser_RaceNamesConflictingField(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantField  string
	}{
		{"email constraint", "idx_users_email", "email"},
		{"username constraint", "idx_users_username", "username"},
		{"unknown constraint", "", "non_field_errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			userService := NewUserService(mockUserRepo)

			// Pre-checks pass, then the insert loses the race.
			mockUserRepo.On("FindByUsername", mock.Anything, "racer").
				Return(nil, gorm.ErrRecordNotFound)
			mockUserRepo.On("ExistsByEmail", mock.Anything, "racer@example.com").Return(false, nil)
			mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
				Return(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			user, err := userService.Create(context.Background(), dto.CreateUserDTO{
				Username: "racer",
				Email:    "racer@example.com",
			})

			assert.Nil(t, user)
			var fe dto.FieldErrors
			assert.ErrorAs(t, err, &fe)
			assert.Contains(t, fe, tt.wantField)
			assert.Len(t, fe, 1)
		})
	}
}

func TestUpdateMe_KeepOwnEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	me := &models.User{ID: "me-id", Username: "myself", Email: "me@example.com"}
	mockUserRepo.On("FindByID", mock.Anything, "me-id").Return(me, nil)
	// Resubmitting your own email is not a conflict.
	mockUserRepo.On("ExistsByEmail", mock.Anything, "me@example.com").Return(true, nil)
	mockUserRepo.On("Update", mock.Anything, me).Return(nil)

	email := "me@example.com"
	bio := "hello"
	updated, err := userService.UpdateMe(context.Background(), "me-id", dto.UpdateMeDTO{
		Email: &email,
		Bio:   &bio,
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello", *updated.Bio)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateUser_RoleChange(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{ID: "user-id", Username: "promoted", Email: "promoted@example.com", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", mock.Anything, "promoted").Return(user, nil)
	mockUserRepo.On("Update", mock.Anything, user).Return(nil)

	role := models.RoleAdmin
	updated, err := userService.Update(context.Background(), "promoted", dto.UpdateUserDTO{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.True(t, updated.IsAdmin())
	mockUserRepo.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Delete", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := userService.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
