package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, username string) (*models.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	args := m.Called(ctx, username, confirmationCode)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	user := &models.User{Username: "newuser", Email: "new@example.com"}
	mockAuthService.On("Signup", mock.Anything, "new@example.com", "newuser").Return(user, nil)

	w := postJSON(router, "/signup", dto.SignupRequest{
		Email:    "new@example.com",
		Username: "newuser",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SignupResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "new@example.com", response.Email)
	assert.Equal(t, "newuser", response.Username)
	mockAuthService.AssertExpectations(t)
}

func TestSignup_ReservedUsername(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	w := postJSON(router, "/signup", dto.SignupRequest{
		Email:    "me@example.com",
		Username: "me",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response, "username")
	mockAuthService.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignup_PairMismatch(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	mockAuthService.On("Signup", mock.Anything, "taken@example.com", "freshname").
		Return(nil, &service.SignupPairError{Exists: "email", Missing: "username"})

	w := postJSON(router, "/signup", dto.SignupRequest{
		Email:    "taken@example.com",
		Username: "freshname",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response, "non_field_errors")
	mockAuthService.AssertExpectations(t)
}

func TestSignup_InvalidJSON(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_MissingEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	w := postJSON(router, "/signup", map[string]string{"username": "lonely"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestToken_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, "confirmed", "valid-code").
		Return("jwt-token", nil)

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "confirmed",
		ConfirmationCode: "valid-code",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "jwt-token", response.Token)
	mockAuthService.AssertExpectations(t)
}

func TestToken_InvalidCode(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, "someone", "bad-code").
		Return("", service.ErrInvalidConfirmationCode)

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "someone",
		ConfirmationCode: "bad-code",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response, "confirmation_code")
	mockAuthService.AssertExpectations(t)
}

func TestToken_UnknownUser(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, "ghost", "any-code").
		Return("", gorm.ErrRecordNotFound)

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "any-code",
	})

	// An unknown username on token exchange is a 404, not a 400: signup
	// must happen first.
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockAuthService.AssertExpectations(t)
}
