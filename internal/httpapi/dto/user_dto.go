package dto

import "reviewhub/internal/httpapi/models"

// CreateUserDTO used by administrators for POST /users
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

func (d CreateUserDTO) Validate() FieldErrors {
	fe := FieldErrors{}
	ValidateUsername(d.Username, fe)
	if d.Role != nil && !models.ValidRole(*d.Role) {
		fe.Add("role", "Role must be one of: user, moderator, admin.")
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (d CreateUserDTO) ToModel() models.User {
	user := models.User{
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
	}
	if d.Role != nil {
		user.Role = *d.Role
	}
	return user
}

// UpdateUserDTO used by administrators for PATCH /users/:username
// (partial updates allowed)
type UpdateUserDTO struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

func (d UpdateUserDTO) Validate() FieldErrors {
	fe := FieldErrors{}
	if d.Username != nil {
		ValidateUsername(*d.Username, fe)
	}
	if d.Role != nil && !models.ValidRole(*d.Role) {
		fe.Add("role", "Role must be one of: user, moderator, admin.")
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ApplyTo copies the present fields onto the model. Role and password are
// applied by the service layer, which owns the hashing and role rules.
func (d UpdateUserDTO) ApplyTo(user *models.User) {
	if d.Username != nil {
		user.Username = *d.Username
	}
	if d.Email != nil {
		user.Email = *d.Email
	}
	if d.FirstName != nil {
		user.FirstName = d.FirstName
	}
	if d.LastName != nil {
		user.LastName = d.LastName
	}
	if d.Bio != nil {
		user.Bio = d.Bio
	}
}

// UpdateMeDTO is the self-profile projection: the same editable subset minus
// role and password. Deliberately an independent struct, not a narrowed
// UpdateUserDTO.
type UpdateMeDTO struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
}

func (d UpdateMeDTO) Validate() FieldErrors {
	fe := FieldErrors{}
	if d.Username != nil {
		ValidateUsername(*d.Username, fe)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (d UpdateMeDTO) ApplyTo(user *models.User) {
	if d.Username != nil {
		user.Username = *d.Username
	}
	if d.Email != nil {
		user.Email = *d.Email
	}
	if d.FirstName != nil {
		user.FirstName = d.FirstName
	}
	if d.LastName != nil {
		user.LastName = d.LastName
	}
	if d.Bio != nil {
		user.Bio = d.Bio
	}
}

// UserResponse is the administrator-facing representation.
type UserResponse struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      string  `json:"role"`
}

// MeResponse is the self-profile representation: the same fields minus role.
type MeResponse struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}

func FromModelToMeResponse(user *models.User) MeResponse {
	return MeResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
	}
}
