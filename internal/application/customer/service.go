package customer

import (
	"context"

	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
)

type Service interface {
	Create(ctx context.Context, userID int64, in dto.CustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, userID, customerID int64) (*domain.Customer, error)
	ListByShop(ctx context.Context, userID, shopID int64) ([]domain.Customer, error)
	Update(ctx context.Context, userID, customerID int64, in dto.CustomerUpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, userID, customerID int64) error
}

type customerStore interface {
	Create(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, customerID int64) (*domain.Customer, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, customerID int64) error
}

type shopStore interface {
	Get(ctx context.Context, shopID int64) (*domain.Shop, error)
}

type service struct {
	customers customerStore
	shops     shopStore
	mapper    *mapper.Mapper
}

type ServiceDeps struct {
	CustomerRepo customerStore
	ShopRepo     shopStore
	Mapper       *mapper.Mapper
}

func NewService(deps ServiceDeps) Service {
	return &service{customers: deps.CustomerRepo, shops: deps.ShopRepo, mapper: deps.Mapper}
}

func (s *service) Create(ctx context.Context, userID int64, in dto.CustomerInput) (*domain.Customer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	shop, err := application.OwnedShop(ctx, s.shops.Get, *in.ShopID, userID)
	if err != nil {
		return nil, err
	}
	c, err := s.mapper.CustomerFromInput(in, shop)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// owned loads a customer whose shop belongs to userID.
func (s *service) owned(ctx context.Context, userID, customerID int64) (*domain.Customer, error) {
	c, err := application.Lookup(ctx, s.customers.Get, customerID, "Customer")
	if err != nil {
		return nil, err
	}
	shop, err := application.OwnedShop(ctx, s.shops.Get, c.ShopID, userID)
	if err != nil {
		return nil, domain.NotFound("Customer")
	}
	c.Shop = shop
	return c, nil
}

func (s *service) Get(ctx context.Context, userID, customerID int64) (*domain.Customer, error) {
	return s.owned(ctx, userID, customerID)
}

func (s *service) ListByShop(ctx context.Context, userID, shopID int64) ([]domain.Customer, error) {
	shop, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID)
	if err != nil {
		return nil, err
	}
	cs, err := s.customers.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	for i := range cs {
		cs[i].Shop = shop
	}
	return cs, nil
}

func (s *service) Update(ctx context.Context, userID, customerID int64, in dto.CustomerUpdateInput) (*domain.Customer, error) {
	c, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	s.mapper.UpdateCustomer(c, in)
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, userID, customerID int64) error {
	c, err := s.owned(ctx, userID, customerID)
	if err != nil {
		return err
	}
	return s.customers.Delete(ctx, c.ID)
}
