package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/infrastructure/google"
	jwtinfra "github.com/shop-assistant-api/internal/infrastructure/jwt"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error) {
	args := m.Called(ctx, sub)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) LinkGoogle(ctx context.Context, u *domain.User, from domain.UserStatus) error {
	return m.Called(ctx, u, from).Error(0)
}
func (m *mockUserStore) SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	return m.Called(ctx, userID, status).Error(0)
}
func (m *mockUserStore) AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (domain.Money, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(domain.Money), args.Error(1)
}

type mockPaymentStore struct{ mock.Mock }

func (m *mockPaymentStore) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Sign(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}
func (m *mockTokens) SignVerification(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *mockTokens) VerifyVerification(token string) (*jwtinfra.Claims, error) {
	args := m.Called(token)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockGoogle struct{ mock.Mock }

func (m *mockGoogle) Verify(ctx context.Context, token string) (*google.Payload, error) {
	args := m.Called(ctx, token)
	if p, _ := args.Get(0).(*google.Payload); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

type fixture struct {
	users    *mockUserStore
	payments *mockPaymentStore
	tokens   *mockTokens
	mailer   *mockMailer
	google   *mockGoogle
	svc      Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    &mockUserStore{},
		payments: &mockPaymentStore{},
		tokens:   &mockTokens{},
		mailer:   &mockMailer{},
		google:   &mockGoogle{},
	}
	f.svc = NewService(ServiceDeps{
		UserRepo:       f.users,
		PaymentRepo:    f.payments,
		JWTProvider:    f.tokens,
		Mailer:         f.mailer,
		GoogleVerifier: f.google,
		Mapper:         mapper.NewWithClock(func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }),
		PublicBaseURL:  "https://shop.example",
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func decimalEq(v string) interface{} {
	want := decimal.RequireFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func isConflict(err error) bool {
	var sc *domain.StateConflictError
	return errors.As(err, &sc)
}

// --- Register tests ---

func TestRegister_EmailTaken(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "lan@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := f.svc.Register(context.Background(), dto.RegistrationInput{Email: "Lan@Example.com", Password: "secret1"})

	require.Error(t, err)
	assert.True(t, isConflict(err))
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Success_SendsVerificationLink(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "lan@example.com").Return(nil, domain.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 42 }).
		Return(nil)
	f.tokens.On("SignVerification", int64(42), "lan@example.com").Return("vtok", nil)
	f.mailer.On("SendEmail", "lan@example.com", mock.Anything,
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "https://shop.example/v1/auth/verify?token=vtok")
		})).Return(nil)

	u, err := f.svc.Register(context.Background(), dto.RegistrationInput{Email: "lan@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusPending, u.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
	f.mailer.AssertExpectations(t)
}

func TestRegister_MailFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.tokens.On("SignVerification", mock.Anything, mock.Anything).Return("vtok", nil)
	f.mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err := f.svc.Register(context.Background(), dto.RegistrationInput{Email: "a@b.com", Password: "secret1"})
	assert.NoError(t, err)
}

// --- VerifyEmail tests ---

func TestVerifyEmail_BadToken(t *testing.T) {
	f := newFixture()
	f.tokens.On("VerifyVerification", "bad").Return(nil, jwtinfra.ErrInvalidToken)

	_, err := f.svc.VerifyEmail(context.Background(), "bad")

	var ia *domain.InvalidArgumentError
	require.True(t, errors.As(err, &ia))
	assert.Equal(t, "Invalid or expired verification token", ia.Message)
}

func TestVerifyEmail_Success(t *testing.T) {
	f := newFixture()
	f.tokens.On("VerifyVerification", "ok").Return(&jwtinfra.Claims{UserID: 3, Email: "a@b.com"}, nil)
	f.users.On("Get", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Email: "a@b.com", Status: domain.UserStatusPending}, nil)
	f.users.On("SetStatus", mock.Anything, int64(3), domain.UserStatusVerified).Return(nil)

	u, err := f.svc.VerifyEmail(context.Background(), "ok")

	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusVerified, u.Status)
	f.users.AssertExpectations(t)
}

func TestVerifyEmail_AlreadyVerified(t *testing.T) {
	f := newFixture()
	f.tokens.On("VerifyVerification", "ok").Return(&jwtinfra.Claims{UserID: 3, Email: "a@b.com"}, nil)
	f.users.On("Get", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Email: "a@b.com", Status: domain.UserStatusVerified}, nil)

	_, err := f.svc.VerifyEmail(context.Background(), "ok")
	assert.True(t, isConflict(err))
}

// --- Login tests ---

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "x@y.com").Return(nil, domain.ErrNotFound)

	_, _, err := f.svc.Login(context.Background(), dto.LoginInput{Email: "x@y.com", Password: "pw"})
	assert.True(t, errors.Is(err, domain.ErrIdentityNotFound))
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "x@y.com").
		Return(&domain.User{ID: 1, PasswordHash: hashed(t, "right"), Status: domain.UserStatusVerified}, nil)

	_, _, err := f.svc.Login(context.Background(), dto.LoginInput{Email: "x@y.com", Password: "wrong"})
	assert.True(t, errors.Is(err, domain.ErrCredentialMismatch))
}

func TestLogin_GoogleOnlyAccountHasNoPassword(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "x@y.com").Return(&domain.User{ID: 1, Status: domain.UserStatusVerified}, nil)

	_, _, err := f.svc.Login(context.Background(), dto.LoginInput{Email: "x@y.com", Password: ""})
	assert.True(t, errors.Is(err, domain.ErrCredentialMismatch))
}

func TestLogin_Unverified(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "x@y.com").
		Return(&domain.User{ID: 1, PasswordHash: hashed(t, "pw"), Status: domain.UserStatusPending}, nil)

	_, _, err := f.svc.Login(context.Background(), dto.LoginInput{Email: "x@y.com", Password: "pw"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not verified")
	f.tokens.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "x@y.com").
		Return(&domain.User{ID: 9, Admin: true, PasswordHash: hashed(t, "pw"), Status: domain.UserStatusVerified}, nil)
	f.tokens.On("Sign", int64(9), domain.RoleAdmin).Return("jwt", nil)

	u, tok, err := f.svc.Login(context.Background(), dto.LoginInput{Email: " X@y.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
	assert.Equal(t, int64(9), u.ID)
}

// --- GoogleLogin tests ---

func TestGoogleLogin_ExistingSub(t *testing.T) {
	f := newFixture()
	f.google.On("Verify", mock.Anything, "idt").Return(&google.Payload{Sub: "g1", Email: "a@b.com", EmailVerified: true}, nil)
	f.users.On("GetByGoogleSub", mock.Anything, "g1").Return(&domain.User{ID: 2, Status: domain.UserStatusVerified}, nil)
	f.tokens.On("Sign", int64(2), domain.RoleUser).Return("jwt", nil)

	_, tok, err := f.svc.GoogleLogin(context.Background(), dto.GoogleLoginInput{IDToken: "idt"})

	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
}

func TestGoogleLogin_LinksLocalAccount(t *testing.T) {
	f := newFixture()
	f.google.On("Verify", mock.Anything, "idt").Return(&google.Payload{Sub: "g1", Email: "A@b.com", EmailVerified: true, Name: "An"}, nil)
	f.users.On("GetByGoogleSub", mock.Anything, "g1").Return(nil, domain.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{ID: 2, Status: domain.UserStatusPending, AuthProvider: "local"}, nil)
	f.users.On("LinkGoogle", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.GoogleSub == "g1" && u.Status == domain.UserStatusVerified && u.FullName == "An"
	}), domain.UserStatusPending).Return(nil)
	f.tokens.On("Sign", int64(2), domain.RoleUser).Return("jwt", nil)

	_, _, err := f.svc.GoogleLogin(context.Background(), dto.GoogleLoginInput{IDToken: "idt"})

	require.NoError(t, err)
	f.users.AssertExpectations(t)
}

func TestGoogleLogin_ConcurrentLinkIsConflict(t *testing.T) {
	f := newFixture()
	f.google.On("Verify", mock.Anything, "idt").Return(&google.Payload{Sub: "g1", Email: "a@b.com", EmailVerified: true}, nil)
	f.users.On("GetByGoogleSub", mock.Anything, "g1").Return(nil, domain.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{ID: 2, Status: domain.UserStatusVerified}, nil)
	f.users.On("LinkGoogle", mock.Anything, mock.Anything, domain.UserStatusVerified).Return(domain.ErrConflict)

	_, _, err := f.svc.GoogleLogin(context.Background(), dto.GoogleLoginInput{IDToken: "idt"})

	assert.EqualError(t, err, "Account was changed concurrently")
	f.tokens.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything)
}

func TestGoogleLogin_CreatesUser(t *testing.T) {
	f := newFixture()
	f.google.On("Verify", mock.Anything, "idt").Return(&google.Payload{Sub: "g1", Email: "new@b.com", EmailVerified: true}, nil)
	f.users.On("GetByGoogleSub", mock.Anything, "g1").Return(nil, domain.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, "new@b.com").Return(nil, domain.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.AuthProvider == "google" && u.Status == domain.UserStatusVerified && u.PasswordHash == ""
	})).Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 5 }).Return(nil)
	f.tokens.On("Sign", int64(5), domain.RoleUser).Return("jwt", nil)

	u, _, err := f.svc.GoogleLogin(context.Background(), dto.GoogleLoginInput{IDToken: "idt"})

	require.NoError(t, err)
	assert.Equal(t, "new@b.com", u.Email)
}

func TestGoogleLogin_UnverifiedGoogleEmail(t *testing.T) {
	f := newFixture()
	f.google.On("Verify", mock.Anything, "idt").Return(&google.Payload{Sub: "g1", Email: "a@b.com"}, nil)

	_, _, err := f.svc.GoogleLogin(context.Background(), dto.GoogleLoginInput{IDToken: "idt"})

	var ia *domain.InvalidArgumentError
	assert.True(t, errors.As(err, &ia))
}

// --- DeductBalance tests ---

func TestDeductBalance_Insufficient(t *testing.T) {
	f := newFixture()
	f.users.On("Get", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.users.On("AdjustBalance", mock.Anything, int64(1), decimalEq("-5")).
		Return(domain.Money{}, domain.ErrConflict)

	amount := decimal.RequireFromString("5")
	_, err := f.svc.DeductBalance(context.Background(), 1, dto.BalanceDeductionInput{Amount: &amount})

	require.Error(t, err)
	assert.Equal(t, "Insufficient balance", err.Error())
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeductBalance_Success_RecordsDebit(t *testing.T) {
	f := newFixture()
	f.users.On("Get", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Balance: domain.MoneyFromInt(10)}, nil)
	f.users.On("AdjustBalance", mock.Anything, int64(1), decimalEq("-5")).
		Return(domain.MoneyFromInt(5), nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Direction == domain.DirectionDebit && p.Status == domain.PaymentStatusSuccess
	})).Return(nil)

	amount := decimal.RequireFromString("5")
	u, err := f.svc.DeductBalance(context.Background(), 1, dto.BalanceDeductionInput{Amount: &amount})

	require.NoError(t, err)
	assert.True(t, u.Balance.Equal(decimal.NewFromInt(5)))
	f.payments.AssertExpectations(t)
}

func TestMe_NotFound(t *testing.T) {
	f := newFixture()
	f.users.On("Get", mock.Anything, int64(8)).Return(nil, domain.ErrNotFound)

	_, err := f.svc.Me(context.Background(), 8)
	assert.EqualError(t, err, "User not found")
}
