package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/isanahealth/practice-api/pkg/logging"
)

const resetTokenTTL = 2 * time.Hour

// EmailSender delivers transactional email (password resets).
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SignInResult carries the authenticated user and their bearer token.
type SignInResult struct {
	User  *TherapistUser `json:"user"`
	Token string         `json:"token"`
}

// Service authenticates practitioners and issues bearer tokens.
type Service struct {
	repo       Repository
	email      EmailSender
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	logger     *logging.Logger
}

// NewService creates an auth service. email may be nil; password resets are
// then logged instead of delivered.
func NewService(repo Repository, email EmailSender, secret string, tokenTTL time.Duration, bcryptCost int, logger *logging.Logger) *Service {
	if repo == nil {
		panic("auth: repository required")
	}
	if secret == "" {
		panic("auth: jwt secret required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:       repo,
		email:      email,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// SignIn verifies the email/password pair and issues a signed token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, hash, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Do not leak whether the account exists.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}

	s.logger.Info("practitioner signed in", "user_id", user.ID)
	return &SignInResult{User: user, Token: token}, nil
}

// SignOut invalidates nothing server-side; tokens are short-lived and the
// caller discards theirs. Kept so the contract mirrors the provider API.
func (s *Service) SignOut(ctx context.Context, userID string) {
	s.logger.Info("practitioner signed out", "user_id", userID)
}

// CurrentUser resolves a bearer token to the practitioner it was issued for.
// Returns nil (not an error) when token is empty, mirroring an absent session.
func (s *Service) CurrentUser(ctx context.Context, token string) (*TherapistUser, error) {
	if token == "" {
		return nil, nil
	}
	userID, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyToken validates a bearer token and returns the subject user id.
func (s *Service) VerifyToken(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// ResetPassword generates a reset token and emails it to the account holder.
// Always returns nil for unknown emails so callers cannot probe accounts.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	user, _, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Info("password reset requested for unknown email")
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("auth: generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.repo.SaveResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("auth: save reset token: %w", err)
	}

	if s.email == nil {
		s.logger.Warn("email sender not configured, reset token not delivered", "user_id", user.ID)
		return nil
	}
	body := fmt.Sprintf("A password reset was requested for your account.\n\nReset token: %s\n\nThe token expires in %s.", token, resetTokenTTL)
	if err := s.email.Send(ctx, user.Email, "Password reset", body); err != nil {
		return fmt.Errorf("auth: send reset email: %w", err)
	}
	return nil
}

// CompletePasswordReset redeems a reset token and sets the new password.
func (s *Service) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.repo.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, userID, newPassword)
}

// ChangePassword verifies the current password before setting the new one.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	_, hash, err := s.repo.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return s.setPassword(ctx, userID, newPassword)
}

// HashPassword produces a bcrypt hash at the service's configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) setPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
