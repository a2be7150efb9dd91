package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

// Claims carried by access tokens.
type Claims struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	IsSuperuser bool   `json:"is_superuser"`
	jwt.RegisteredClaims
}

// confirmationClaims carried by emailed confirmation codes. The state claim
// binds the code to the account's mutable fields, so any change to them
// invalidates outstanding codes without server-side bookkeeping.
type confirmationClaims struct {
	State string `json:"state"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Signup validates the pair, creates the account if needed (idempotent
	// for an exact existing pair) and mails a confirmation code.
	Signup(ctx context.Context, email, username string) (*models.User, error)
	// IssueToken exchanges a valid confirmation code for an access token.
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
	// ValidateToken parses and verifies an access token.
	ValidateToken(tokenString string) (*Claims, error)
	// Authenticate resolves a bearer token to the current account.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo        repository.UserRepository
	mailer          Mailer
	logger          *slog.Logger
	jwtSecret       string
	accessTokenTTL  time.Duration
	confirmationTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	mailer Mailer,
	logger *slog.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		mailer:          mailer,
		logger:          logger,
		jwtSecret:       cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		confirmationTTL: cfg.ConfirmationTTL,
	}
}

func (s *authService) Signup(ctx context.Context, email, username string) (*models.User, error) {
	// Exact existing pair: resend the code, do not duplicate the account.
	user, err := s.userRepo.FindByUsernameAndEmail(ctx, username, email)
	if err == nil {
		s.sendConfirmationCode(user)
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	usernameExists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if emailExists != usernameExists {
		if emailExists {
			return nil, &SignupPairError{Exists: "email", Missing: "username"}
		}
		return nil, &SignupPairError{Exists: "username", Missing: "email"}
	}

	user = &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Both-exist-on-different-accounts races land here; the store's
		// constraints arbitrate.
		if repository.IsUniqueViolation(err) {
			return nil, &SignupPairError{Exists: "username", Missing: "email"}
		}
		return nil, err
	}

	s.sendConfirmationCode(user)
	return user, nil
}

// sendConfirmationCode dispatches the code by mail. A delivery failure is
// logged and otherwise ignored: the account already exists and a repeated
// signup with the same pair re-sends a fresh code.
func (s *authService) sendConfirmationCode(user *models.User) {
	code, err := s.makeConfirmationCode(user)
	if err != nil {
		s.logger.Error("failed to generate confirmation code",
			"username", user.Username, "error", err)
		return
	}

	body := "To get a token, POST your username and confirmation code " +
		"to the 'auth/token' endpoint.\n" +
		fmt.Sprintf("Your confirmation code is: %s", code)
	if err := s.mailer.Send(user.Email, "ReviewHub: Confirm your email", body); err != nil {
		s.logger.Error("failed to send confirmation code",
			"username", user.Username, "error", err)
	}
}

func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if !s.checkConfirmationCode(user, confirmationCode) {
		return "", ErrInvalidConfirmationCode
	}

	// Stamping last_login rotates the account state hash, so a redeemed
	// code cannot be replayed.
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// makeConfirmationCode signs a short-lived token bound to the account's
// current state.
func (s *authService) makeConfirmationCode(user *models.User) (string, error) {
	now := time.Now()
	claims := confirmationClaims{
		State: accountStateHash(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.confirmationTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// checkConfirmationCode verifies signature, expiry, subject and the account
// state binding. Verification is stateless; nothing is tracked server-side.
func (s *authService) checkConfirmationCode(user *models.User, code string) bool {
	token, err := jwt.ParseWithClaims(code, &confirmationClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(*confirmationClaims)
	if !ok {
		return false
	}
	return claims.Subject == user.Username && claims.State == accountStateHash(user)
}

// accountStateHash digests the mutable account fields a confirmation code
// must stay bound to.
func accountStateHash(user *models.User) string {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UTC().Format(time.RFC3339Nano)
	}
	sum := sha256.Sum256([]byte(user.Email + "|" + user.Password + "|" + lastLogin + "|" + user.Role))
	return hex.EncodeToString(sum[:])
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	// Role and ownership checks run against the stored account, not the
	// token snapshot.
	return s.userRepo.FindByID(ctx, claims.UserID)
}
