package dto

// Data Transfer Objects for the signup and token endpoints

// SignupRequest: payload for account signup
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required"`
}

// Validate applies the field rules the binding tags cannot express.
func (r SignupRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	ValidateUsername(r.Username, fe)
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// SignupResponse echoes the validated fields; the confirmation code is only
// ever delivered by mail.
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest: payload for exchanging a confirmation code for an access token
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

func (r TokenRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	ValidateUsername(r.Username, fe)
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// TokenResponse: response payload after successful code verification
type TokenResponse struct {
	Token string `json:"token"`
}
