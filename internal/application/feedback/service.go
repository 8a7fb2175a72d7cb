package feedback

import (
	"context"

	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
)

type Service interface {
	Create(ctx context.Context, userID int64, in dto.FeedbackInput) (*domain.Feedback, error)
	ListByProduct(ctx context.Context, userID, productID int64) ([]domain.Feedback, error)
}

type feedbackStore interface {
	Create(ctx context.Context, f *domain.Feedback) error
	ListByProduct(ctx context.Context, productID int64) ([]domain.Feedback, error)
}

type customerStore interface {
	Get(ctx context.Context, customerID int64) (*domain.Customer, error)
}

type productStore interface {
	Get(ctx context.Context, productID int64) (*domain.Product, error)
}

type shopStore interface {
	Get(ctx context.Context, shopID int64) (*domain.Shop, error)
}

type service struct {
	feedbacks feedbackStore
	customers customerStore
	products  productStore
	shops     shopStore
	mapper    *mapper.Mapper
}

type ServiceDeps struct {
	FeedbackRepo feedbackStore
	CustomerRepo customerStore
	ProductRepo  productStore
	ShopRepo     shopStore
	Mapper       *mapper.Mapper
}

func NewService(deps ServiceDeps) Service {
	return &service{
		feedbacks: deps.FeedbackRepo,
		customers: deps.CustomerRepo,
		products:  deps.ProductRepo,
		shops:     deps.ShopRepo,
		mapper:    deps.Mapper,
	}
}

func (s *service) Create(ctx context.Context, userID int64, in dto.FeedbackInput) (*domain.Feedback, error) {
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
	f, err := s.mapper.FeedbackFromInput(in, customer, product)
	if err != nil {
		return nil, err
	}
	if err := s.feedbacks.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) ListByProduct(ctx context.Context, userID, productID int64) ([]domain.Feedback, error) {
	product, err := application.Lookup(ctx, s.products.Get, productID, "Product")
	if err != nil {
		return nil, err
	}
	if _, err := application.OwnedShop(ctx, s.shops.Get, product.ShopID, userID); err != nil {
		return nil, domain.NotFound("Product")
	}
	fs, err := s.feedbacks.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	for i := range fs {
		fs[i].Product = product
	}
	return fs, nil
}
