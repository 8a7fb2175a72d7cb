package payment

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/infrastructure/vnpay"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shop-assistant-api/internal/pkg/id"
	"github.com/shopspring/decimal"
)

type Service interface {
	// Credit records an administrator top-up and credits the user immediately.
	Credit(ctx context.Context, in dto.PaymentInput) (*domain.Payment, error)
	CreateVNPay(ctx context.Context, userID int64, in dto.VNPayCreateInput, clientIP string) (*domain.Payment, string, error)
	HandleVNPayReturn(ctx context.Context, query url.Values) (*domain.Payment, error)
	List(ctx context.Context, userID int64) ([]domain.Payment, error)
}

type paymentStore interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByTxnRef(ctx context.Context, txnRef string) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	Settle(ctx context.Context, paymentID int64, status domain.PaymentStatus, gatewayCode string) error
}

type userStore interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (domain.Money, error)
}

type gateway interface {
	PaymentURL(req vnpay.PaymentRequest) (string, error)
	VerifyReturn(query url.Values) (*vnpay.ReturnResult, error)
}

type service struct {
	payments paymentStore
	users    userStore
	gateway  gateway
	mapper   *mapper.Mapper
	logger   *slog.Logger
}

type ServiceDeps struct {
	PaymentRepo paymentStore
	UserRepo    userStore
	VNPay       gateway
	Mapper      *mapper.Mapper
	Logger      *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		payments: deps.PaymentRepo,
		users:    deps.UserRepo,
		gateway:  deps.VNPay,
		mapper:   deps.Mapper,
		logger:   logger,
	}
}

func (s *service) Credit(ctx context.Context, in dto.PaymentInput) (*domain.Payment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := application.Lookup(ctx, s.users.Get, *in.UserID, "User")
	if err != nil {
		return nil, err
	}
	p, err := s.mapper.PaymentFromInput(in, user)
	if err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.settle(ctx, p, domain.PaymentStatusSuccess, ""); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) CreateVNPay(ctx context.Context, userID int64, in dto.VNPayCreateInput, clientIP string) (*domain.Payment, string, error) {
	user, err := application.Lookup(ctx, s.users.Get, userID, "User")
	if err != nil {
		return nil, "", err
	}
	p, err := s.mapper.PaymentFromVNPay(in, user, id.New())
	if err != nil {
		return nil, "", err
	}
	payURL, err := s.gateway.PaymentURL(vnpay.PaymentRequest{
		TxnRef:    p.TxnRef,
		Amount:    p.Amount.Decimal,
		OrderInfo: p.Description,
		BankCode:  p.BankCode,
		Locale:    in.Language,
		IPAddr:    clientIP,
	})
	if err != nil {
		return nil, "", err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, "", err
	}
	return p, payURL, nil
}

// HandleVNPayReturn settles the payment named by a signed gateway callback.
// Each transaction is settled at most once.
func (s *service) HandleVNPayReturn(ctx context.Context, query url.Values) (*domain.Payment, error) {
	res, err := s.gateway.VerifyReturn(query)
	if err != nil {
		return nil, &domain.InvalidArgumentError{Message: "Invalid payment signature", Cause: err}
	}
	p, err := s.payments.GetByTxnRef(ctx, res.TxnRef)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("Payment")
	}
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, domain.Conflict("Payment already processed")
	}

	status := domain.PaymentStatusFailed
	if res.Successful() {
		if !res.Amount.Equal(p.Amount.Decimal) {
			s.logger.Warn("vnpay amount mismatch", "txn_ref", p.TxnRef, "expected", p.Amount.String(), "got", res.Amount.String())
		} else {
			status = domain.PaymentStatusSuccess
		}
	}
	if err := s.settle(ctx, p, status, res.ResponseCode); err != nil {
		return nil, err
	}
	return p, nil
}

// settle closes a pending payment and, for a successful credit, adds the
// amount to the user's balance. The conditional status change guarantees the
// balance is credited once.
func (s *service) settle(ctx context.Context, p *domain.Payment, status domain.PaymentStatus, gatewayCode string) error {
	err := s.payments.Settle(ctx, p.ID, status, gatewayCode)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Conflict("Payment already processed")
	}
	if err != nil {
		return err
	}
	p.Status = status
	p.GatewayCode = gatewayCode
	if status != domain.PaymentStatusSuccess || p.Direction != domain.DirectionCredit {
		return nil
	}
	balance, err := s.users.AdjustBalance(ctx, p.UserID, p.Amount.Decimal)
	if err != nil {
		return errors.Wrapf(err, "credit payment %d", p.ID)
	}
	if p.User != nil {
		p.User.Balance = balance
	}
	return nil
}

func (s *service) List(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}
