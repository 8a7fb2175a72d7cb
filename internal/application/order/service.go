package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
)

type Service interface {
	Create(ctx context.Context, userID int64, in dto.OrderInput) (*domain.Order, error)
	Get(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	ListByShop(ctx context.Context, userID, shopID int64) ([]domain.Order, error)
	Update(ctx context.Context, userID, orderID int64, in dto.OrderUpdateInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID int64, in dto.OrderStatusInput) (*domain.Order, error)
}

type orderStore interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID int64) (*domain.Order, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	TransitionStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) error
}

type productStore interface {
	Get(ctx context.Context, productID int64) (*domain.Product, error)
	AdjustStock(ctx context.Context, productID int64, delta int) error
}

type customerStore interface {
	Get(ctx context.Context, customerID int64) (*domain.Customer, error)
}

type shopStore interface {
	Get(ctx context.Context, shopID int64) (*domain.Shop, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	orders    orderStore
	products  productStore
	customers customerStore
	shops     shopStore
	sms       smsSender
	mapper    *mapper.Mapper
	logger    *slog.Logger
}

type ServiceDeps struct {
	OrderRepo    orderStore
	ProductRepo  productStore
	CustomerRepo customerStore
	ShopRepo     shopStore
	SMSSender    smsSender
	Mapper       *mapper.Mapper
	Logger       *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		orders:    deps.OrderRepo,
		products:  deps.ProductRepo,
		customers: deps.CustomerRepo,
		shops:     deps.ShopRepo,
		sms:       deps.SMSSender,
		mapper:    deps.Mapper,
		logger:    logger,
	}
}

// Create places a pending order. Stock is reserved before the order is
// written and released again if the write fails.
func (s *service) Create(ctx context.Context, userID int64, in dto.OrderInput) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	customer, err := application.Lookup(ctx, s.customers.Get, *in.CustomerID, "Customer")
	if err != nil {
		return nil, err
	}
	product, err := application.Lookup(ctx, s.products.Get, *in.ProductID, "Product")
	if err != nil {
		return nil, err
	}
	if customer.ShopID != product.ShopID {
		return nil, domain.Invalid("Customer and product belong to different shops")
	}
	if _, err := application.OwnedShop(ctx, s.shops.Get, product.ShopID, userID); err != nil {
		return nil, err
	}

	o, err := s.mapper.OrderFromInput(in, customer, product)
	if err != nil {
		return nil, err
	}
	if err := s.reserve(ctx, product.ID, o.Quantity); err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, o); err != nil {
		s.release(ctx, product.ID, o.Quantity)
		return nil, err
	}
	s.notify(ctx, o)
	return o, nil
}

func (s *service) reserve(ctx context.Context, productID int64, qty int) error {
	err := s.products.AdjustStock(ctx, productID, -qty)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Conflict("Insufficient stock")
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("Product")
	}
	return err
}

func (s *service) release(ctx context.Context, productID int64, qty int) {
	if err := s.products.AdjustStock(ctx, productID, qty); err != nil {
		s.logger.Error("could not release reserved stock", "product_id", productID, "quantity", qty, "err", err)
	}
}

// notify texts the customer about a new order. Failures are logged only.
func (s *service) notify(ctx context.Context, o *domain.Order) {
	if s.sms == nil || o.Customer == nil || o.Customer.Phone == "" {
		return
	}
	msg := fmt.Sprintf("Don hang #%d cua ban da duoc tiep nhan. Tong tien: %s VND.", o.ID, o.TotalPrice.StringFixed(0))
	if err := s.sms.SendSMS(ctx, o.Customer.Phone, msg); err != nil {
		s.logger.Warn("could not send order sms", "order_id", o.ID, "err", err)
	}
}

func (s *service) owned(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	o, err := application.Lookup(ctx, s.orders.Get, orderID, "Order")
	if err != nil {
		return nil, err
	}
	if _, err := application.OwnedShop(ctx, s.shops.Get, o.ShopID, userID); err != nil {
		return nil, domain.NotFound("Order")
	}
	s.attach(ctx, o)
	return o, nil
}

// attach loads the customer and product for display. Deleted references
// leave the name blank.
func (s *service) attach(ctx context.Context, o *domain.Order) {
	if c, err := s.customers.Get(ctx, o.CustomerID); err == nil {
		o.Customer = c
	}
	if p, err := s.products.Get(ctx, o.ProductID); err == nil {
		o.Product = p
	}
}

func (s *service) Get(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	return s.owned(ctx, userID, orderID)
}

func (s *service) ListByShop(ctx context.Context, userID, shopID int64) ([]domain.Order, error) {
	shop, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByShop(ctx, shop.ID)
}

// Update edits note, delivery unit and, while the order is pending, quantity.
func (s *service) Update(ctx context.Context, userID, orderID int64, in dto.OrderUpdateInput) (*domain.Order, error) {
	o, err := s.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.Final() {
		return nil, domain.Conflict("Order can no longer be modified")
	}
	diff := 0
	if in.Quantity != nil && *in.Quantity != o.Quantity {
		if o.Status != domain.OrderStatusPending {
			return nil, domain.Conflict("Quantity can only change while the order is pending")
		}
		diff = *in.Quantity - o.Quantity
	}
	if diff != 0 {
		if err := s.reserve(ctx, o.ProductID, diff); err != nil {
			return nil, err
		}
	}
	s.mapper.UpdateOrder(o, in)
	if err := s.orders.Update(ctx, o); err != nil {
		if diff != 0 {
			s.release(ctx, o.ProductID, diff)
		}
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("Order status was changed concurrently")
		}
		return nil, err
	}
	return o, nil
}

// UpdateStatus moves the order along its lifecycle. Cancelling returns the
// reserved stock.
func (s *service) UpdateStatus(ctx context.Context, userID, orderID int64, in dto.OrderStatusInput) (*domain.Order, error) {
	o, err := s.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(in.Status) {
		return nil, domain.Conflict("Cannot change order status from %s to %s", o.Status, in.Status)
	}
	err = s.orders.TransitionStatus(ctx, o.ID, o.Status, in.Status)
	if errors.Is(err, domain.ErrConflict) {
		return nil, domain.Conflict("Order status was changed concurrently")
	}
	if err != nil {
		return nil, err
	}
	o.Status = in.Status
	if in.Status == domain.OrderStatusCancelled {
		s.release(ctx, o.ProductID, o.Quantity)
	}
	return o, nil
}
