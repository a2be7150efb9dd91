package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /auth/signup. The confirmation code goes out by mail
// only; the response echoes the validated pair.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if ferr := req.Validate(); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req.Email, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignupResponse{
		Email:    user.Email,
		Username: user.Username,
	})
}

// Token handles POST /auth/token, exchanging a confirmation code for an
// access token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if ferr := req.Validate(); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		if err == service.ErrInvalidConfirmationCode {
			c.JSON(http.StatusBadRequest, gin.H{"confirmation_code": []string{"Invalid confirmation code."}})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
