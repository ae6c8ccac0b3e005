package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saransh1220/linkhub/internal/modules/auth/domain"
	"github.com/saransh1220/linkhub/internal/shared/utils"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// AuthResult is returned by every sign-in path.
type AuthResult struct {
	Token string             `json:"token"`
	User  domain.AccountView `json:"user"`
}

// GoogleValidator verifies a Google ID token for the given audience.
type GoogleValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type AuthService struct {
	repo           domain.AccountRepository
	jwtSecret      string
	jwtExpiry      time.Duration
	googleClientID string
	verifyGoogle   GoogleValidator
	logger         *slog.Logger
}

func NewAuthService(repo domain.AccountRepository, jwtSecret string, jwtExpiry time.Duration, googleClientID string, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		repo:           repo,
		jwtSecret:      jwtSecret,
		jwtExpiry:      jwtExpiry,
		googleClientID: googleClientID,
		verifyGoogle:   idtoken.Validate,
		logger:         logger,
	}
}

// WithGoogleValidator replaces the network-backed Google token check.
func (s *AuthService) WithGoogleValidator(v GoogleValidator) *AuthService {
	s.verifyGoogle = v
	return s
}

// Register creates an email/password account and signs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Field() == "Password" {
			return nil, fmt.Errorf("%w: password must be 8 to 72 characters", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	account := &domain.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("account registered", "account_id", account.ID)
	return s.issue(account)
}

// Login checks email/password. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if account.PasswordHash == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(account)
}

// GoogleLogin verifies a Google ID token and signs in the matching account,
// creating or linking it on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*AuthResult, error) {
	if req.IDToken == "" {
		return nil, fmt.Errorf("%w: id_token is required", domain.ErrInvalidInput)
	}

	payload, err := s.verifyGoogle(ctx, req.IDToken, s.googleClientID)
	if err != nil {
		s.logger.Warn("google token rejected", "error", err)
		return nil, domain.ErrInvalidGoogleToken
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: email not provided by google", domain.ErrInvalidGoogleToken)
	}

	account, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		account = &domain.Account{ID: uuid.New(), Email: email, GoogleID: &payload.Subject}
		if err := s.repo.Create(ctx, account); err != nil {
			return nil, err
		}
		s.logger.Info("account created from google sign-in", "account_id", account.ID)
	case err != nil:
		return nil, err
	case account.GoogleID == nil:
		if err := s.repo.LinkGoogle(ctx, account.ID, payload.Subject); err != nil {
			return nil, err
		}
		account.GoogleID = &payload.Subject
	}
	return s.issue(account)
}

// GetAccount resolves the account behind a token's user id.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *AuthService) issue(account *domain.Account) (*AuthResult, error) {
	token, err := utils.GenerateToken(account.ID.String(), account.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: account.View()}, nil
}
