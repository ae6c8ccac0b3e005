package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/linkhub/internal/modules/auth/domain"
	"github.com/saransh1220/linkhub/internal/shared/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepository) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error {
	return m.Called(ctx, id, googleID).Error(0)
}

const secret = "test-secret"

func newService(repo domain.AccountRepository) *AuthService {
	return NewAuthService(repo, secret, time.Hour, "client-id", nil)
}

func accountWithPassword(t *testing.T, email, password string) *domain.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)
	return &domain.Account{ID: uuid.New(), Email: email, PasswordHash: &h}
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockAccountRepository)
	svc := newService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(a *domain.Account) bool {
		return a.Email == "jane@example.com" && a.PasswordHash != nil &&
			bcrypt.CompareHashAndPassword([]byte(*a.PasswordHash), []byte("password123")) == nil
	})).Return(nil).Once()

	res, err := svc.Register(ctx, RegisterRequest{Email: " jane@example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)

	claims, err := utils.ValidateToken(res.Token, secret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	repo.AssertExpectations(t)
}

func TestRegister_Invalid(t *testing.T) {
	svc := newService(new(mockAccountRepository))

	cases := map[string]RegisterRequest{
		"missing email":  {Password: "password123"},
		"short password": {Email: "a@example.com", Password: "short"},
		"bad email":      {Email: "not-an-email", Password: "password123"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	repo := new(mockAccountRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAccountExists)

	_, err := newService(repo).Register(context.Background(), RegisterRequest{Email: "a@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrAccountExists)
}

func TestLogin(t *testing.T) {
	repo := new(mockAccountRepository)
	svc := newService(repo)
	acc := accountWithPassword(t, "jane@example.com", "password123")
	google := &domain.Account{ID: uuid.New(), Email: "g@example.com"}

	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(acc, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrAccountNotFound)
	repo.On("GetByEmail", mock.Anything, "g@example.com").Return(google, nil)
	repo.On("GetByEmail", mock.Anything, "down@example.com").Return(nil, errors.New("db down"))

	res, err := svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID.String(), res.User.ID)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), LoginRequest{Email: "g@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), LoginRequest{Email: "down@example.com", Password: "x"})
	assert.EqualError(t, err, "db down")
}

func googlePayload(email string) GoogleValidator {
	return func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good" || audience != "client-id" {
			return nil, errors.New("bad token")
		}
		return &idtoken.Payload{Subject: "google-sub", Claims: map[string]any{"email": email}}, nil
	}
}

func TestGoogleLogin_CreatesAccount(t *testing.T) {
	repo := new(mockAccountRepository)
	svc := newService(repo).WithGoogleValidator(googlePayload("new@example.com"))

	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrAccountNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
		return a.GoogleID != nil && *a.GoogleID == "google-sub" && a.PasswordHash == nil
	})).Return(nil).Once()

	res, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", res.User.Email)
	repo.AssertExpectations(t)
}

func TestGoogleLogin_LinksExistingAccount(t *testing.T) {
	repo := new(mockAccountRepository)
	svc := newService(repo).WithGoogleValidator(googlePayload("jane@example.com"))
	acc := accountWithPassword(t, "jane@example.com", "password123")

	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(acc, nil)
	repo.On("LinkGoogle", mock.Anything, acc.ID, "google-sub").Return(nil).Once()

	res, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID.String(), res.User.ID)
	repo.AssertExpectations(t)
}

func TestGoogleLogin_Rejections(t *testing.T) {
	svc := newService(new(mockAccountRepository)).WithGoogleValidator(googlePayload(""))

	_, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "forged"})
	assert.ErrorIs(t, err, domain.ErrInvalidGoogleToken)
	_, err = svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "good"})
	assert.ErrorIs(t, err, domain.ErrInvalidGoogleToken)
}

func TestGetAccount(t *testing.T) {
	repo := new(mockAccountRepository)
	svc := newService(repo)
	acc := &domain.Account{ID: uuid.New(), Email: "a@example.com"}
	repo.On("GetByID", mock.Anything, acc.ID).Return(acc, nil)

	got, err := svc.GetAccount(context.Background(), acc.ID.String())
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	_, err = svc.GetAccount(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
