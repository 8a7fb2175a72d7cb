package shop

import (
	"context"

	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
)

type Service interface {
	Create(ctx context.Context, userID int64, in dto.ShopInput) (*domain.Shop, error)
	Get(ctx context.Context, userID, shopID int64) (*domain.Shop, error)
	List(ctx context.Context, userID int64) ([]domain.Shop, error)
	Update(ctx context.Context, userID, shopID int64, in dto.ShopInput) (*domain.Shop, error)
	Delete(ctx context.Context, userID, shopID int64) error
}

type shopStore interface {
	Create(ctx context.Context, s *domain.Shop) error
	Get(ctx context.Context, shopID int64) (*domain.Shop, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Shop, error)
	Update(ctx context.Context, s *domain.Shop) error
	Delete(ctx context.Context, shopID int64) error
}

type userStore interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
}

type service struct {
	shops  shopStore
	users  userStore
	mapper *mapper.Mapper
}

type ServiceDeps struct {
	ShopRepo shopStore
	UserRepo userStore
	Mapper   *mapper.Mapper
}

func NewService(deps ServiceDeps) Service {
	return &service{shops: deps.ShopRepo, users: deps.UserRepo, mapper: deps.Mapper}
}

func (s *service) Create(ctx context.Context, userID int64, in dto.ShopInput) (*domain.Shop, error) {
	owner, err := application.Lookup(ctx, s.users.Get, userID, "User")
	if err != nil {
		return nil, err
	}
	shop, err := s.mapper.ShopFromInput(in, owner)
	if err != nil {
		return nil, err
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *service) Get(ctx context.Context, userID, shopID int64) (*domain.Shop, error) {
	shop, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID)
	if err != nil {
		return nil, err
	}
	// Owner name is best-effort; a missing owner row leaves it blank.
	if owner, err := s.users.Get(ctx, shop.OwnerID); err == nil {
		shop.Owner = owner
	}
	return shop, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]domain.Shop, error) {
	return s.shops.ListByOwner(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, shopID int64, in dto.ShopInput) (*domain.Shop, error) {
	shop, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID)
	if err != nil {
		return nil, err
	}
	s.mapper.UpdateShop(shop, in)
	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *service) Delete(ctx context.Context, userID, shopID int64) error {
	if _, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID); err != nil {
		return err
	}
	return s.shops.Delete(ctx, shopID)
}
