package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/infrastructure/google"
	jwtinfra "github.com/shop-assistant-api/internal/infrastructure/jwt"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const authProviderGoogle = "google"

const verificationSubject = "Xác thực tài khoản Shop Assistant"

type Service interface {
	Register(ctx context.Context, in dto.RegistrationInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)
	Login(ctx context.Context, in dto.LoginInput) (*domain.User, string, error)
	GoogleLogin(ctx context.Context, in dto.GoogleLoginInput) (*domain.User, string, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
	DeductBalance(ctx context.Context, userID int64, in dto.BalanceDeductionInput) (*domain.User, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error)
	LinkGoogle(ctx context.Context, u *domain.User, from domain.UserStatus) error
	SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (domain.Money, error)
}

type paymentStore interface {
	Create(ctx context.Context, p *domain.Payment) error
}

type tokenIssuer interface {
	Sign(userID int64, role string) (string, error)
	SignVerification(userID int64, email string) (string, error)
	VerifyVerification(token string) (*jwtinfra.Claims, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type service struct {
	users         userStore
	payments      paymentStore
	tokens        tokenIssuer
	mailer        mailer
	google        googleVerifier
	mapper        *mapper.Mapper
	publicBaseURL string
	logger        *slog.Logger
}

type ServiceDeps struct {
	UserRepo       userStore
	PaymentRepo    paymentStore
	JWTProvider    tokenIssuer
	Mailer         mailer
	GoogleVerifier googleVerifier
	Mapper         *mapper.Mapper
	PublicBaseURL  string
	Logger         *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		users:         deps.UserRepo,
		payments:      deps.PaymentRepo,
		tokens:        deps.JWTProvider,
		mailer:        deps.Mailer,
		google:        deps.GoogleVerifier,
		mapper:        deps.Mapper,
		publicBaseURL: deps.PublicBaseURL,
		logger:        logger,
	}
}

func (s *service) Register(ctx context.Context, in dto.RegistrationInput) (*domain.User, error) {
	email := domain.EmailKey(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := s.mapper.UserFromRegistration(in, string(hash))
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.sendVerification(u)
	return u, nil
}

// sendVerification mails the verification link. Delivery failures are logged
// and do not fail registration.
func (s *service) sendVerification(u *domain.User) {
	token, err := s.tokens.SignVerification(u.ID, u.Email)
	if err != nil {
		s.logger.Warn("could not sign verification token", "user_id", u.ID, "err", err)
		return
	}
	link := fmt.Sprintf("%s/v1/auth/verify?token=%s", s.publicBaseURL, url.QueryEscape(token))
	body := fmt.Sprintf("Xin chào,\n\nVui lòng xác thực tài khoản của bạn bằng cách truy cập liên kết sau:\n%s\n", link)
	if err := s.mailer.SendEmail(u.Email, verificationSubject, body); err != nil {
		s.logger.Warn("could not send verification email", "user_id", u.ID, "err", err)
	}
}

func (s *service) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.VerifyVerification(token)
	if err != nil {
		return nil, &domain.InvalidArgumentError{Message: "Invalid or expired verification token", Cause: err}
	}
	u, err := application.Lookup(ctx, s.users.Get, claims.UserID, "User")
	if err != nil {
		return nil, err
	}
	if u.Email != claims.Email {
		return nil, domain.Invalid("Invalid or expired verification token")
	}
	switch u.Status {
	case domain.UserStatusVerified:
		return nil, domain.Conflict("Email already verified")
	case domain.UserStatusBlocked:
		return nil, domain.Conflict("Account is blocked")
	}
	if err := s.users.SetStatus(ctx, u.ID, domain.UserStatusVerified); err != nil {
		return nil, err
	}
	u.Status = domain.UserStatusVerified
	return u, nil
}

func (s *service) Login(ctx context.Context, in dto.LoginInput) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, domain.EmailKey(in.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", domain.ErrCredentialMismatch
	}
	return s.issue(u)
}

// issue checks the account state and signs a bearer token.
func (s *service) issue(u *domain.User) (*domain.User, string, error) {
	switch u.Status {
	case domain.UserStatusPending:
		return nil, "", domain.ErrEmailNotVerified
	case domain.UserStatusBlocked:
		return nil, "", domain.Conflict("Account is blocked")
	}
	token, err := s.tokens.Sign(u.ID, u.Role())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) GoogleLogin(ctx context.Context, in dto.GoogleLoginInput) (*domain.User, string, error) {
	p, err := s.google.Verify(ctx, in.IDToken)
	if err != nil {
		return nil, "", err
	}
	if !p.EmailVerified || p.Email == "" {
		return nil, "", domain.Invalid("Google account email is unconfirmed")
	}

	u, err := s.users.GetByGoogleSub(ctx, p.Sub)
	if err == nil {
		return s.issue(u)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	u, err = s.users.GetByEmail(ctx, domain.EmailKey(p.Email))
	switch {
	case err == nil:
		// Link the Google identity to the existing local account; Google has
		// already confirmed the address.
		from := u.Status
		u.GoogleSub = p.Sub
		if u.Status == domain.UserStatusPending {
			u.Status = domain.UserStatusVerified
		}
		if u.FullName == "" {
			u.FullName = p.Name
		}
		err := s.users.LinkGoogle(ctx, u, from)
		if errors.Is(err, domain.ErrConflict) {
			return nil, "", domain.Conflict("Account was changed concurrently")
		}
		if err != nil {
			return nil, "", err
		}
	case errors.Is(err, domain.ErrNotFound):
		u = s.mapper.UserFromRegistration(dto.RegistrationInput{Email: p.Email}, "")
		u.Status = domain.UserStatusVerified
		u.AuthProvider = authProviderGoogle
		u.GoogleSub = p.Sub
		u.FullName = p.Name
		if err := s.users.Create(ctx, u); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}
	return s.issue(u)
}

func (s *service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return application.Lookup(ctx, s.users.Get, userID, "User")
}

// DeductBalance debits the balance atomically and records the debit.
func (s *service) DeductBalance(ctx context.Context, userID int64, in dto.BalanceDeductionInput) (*domain.User, error) {
	u, err := application.Lookup(ctx, s.users.Get, userID, "User")
	if err != nil {
		return nil, err
	}
	p, err := s.mapper.PaymentFromDeduction(in, u)
	if err != nil {
		return nil, err
	}
	balance, err := s.users.AdjustBalance(ctx, u.ID, p.Amount.Neg())
	if errors.Is(err, domain.ErrConflict) {
		return nil, domain.Conflict("Insufficient balance")
	}
	if err != nil {
		return nil, err
	}
	u.Balance = balance

	p.Status = domain.PaymentStatusSuccess
	if err := s.payments.Create(ctx, p); err != nil {
		s.logger.Error("balance debited but payment record failed", "user_id", u.ID, "amount", p.Amount.String(), "err", err)
	}
	return u, nil
}
