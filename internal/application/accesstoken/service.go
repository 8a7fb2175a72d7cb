// Package accesstoken manages the credentials that connect a shop to a
// messaging channel.
package accesstoken

import (
	"context"

	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
)

type Service interface {
	Create(ctx context.Context, userID int64, in dto.AccessTokenInput) (*domain.AccessToken, error)
	ListByShop(ctx context.Context, userID, shopID int64) ([]domain.AccessToken, error)
	Revoke(ctx context.Context, userID, tokenID int64) (*domain.AccessToken, error)
}

type tokenStore interface {
	Create(ctx context.Context, tok *domain.AccessToken) error
	Get(ctx context.Context, tokenID int64) (*domain.AccessToken, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.AccessToken, error)
	SetStatus(ctx context.Context, tokenID int64, status domain.TokenStatus) error
}

type shopStore interface {
	Get(ctx context.Context, shopID int64) (*domain.Shop, error)
}

type userStore interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
}

type service struct {
	tokens tokenStore
	shops  shopStore
	users  userStore
	mapper *mapper.Mapper
}

type ServiceDeps struct {
	AccessTokenRepo tokenStore
	ShopRepo        shopStore
	UserRepo        userStore
	Mapper          *mapper.Mapper
}

func NewService(deps ServiceDeps) Service {
	return &service{
		tokens: deps.AccessTokenRepo,
		shops:  deps.ShopRepo,
		users:  deps.UserRepo,
		mapper: deps.Mapper,
	}
}

func (s *service) Create(ctx context.Context, userID int64, in dto.AccessTokenInput) (*domain.AccessToken, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	shop, err := application.OwnedShop(ctx, s.shops.Get, *in.ShopID, userID)
	if err != nil {
		return nil, err
	}
	user, err := application.Lookup(ctx, s.users.Get, userID, "User")
	if err != nil {
		return nil, err
	}
	tok, err := s.mapper.AccessTokenFromInput(in, shop, user)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (s *service) ListByShop(ctx context.Context, userID, shopID int64) ([]domain.AccessToken, error) {
	shop, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID)
	if err != nil {
		return nil, err
	}
	toks, err := s.tokens.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	for i := range toks {
		toks[i].Shop = shop
	}
	return toks, nil
}

func (s *service) Revoke(ctx context.Context, userID, tokenID int64) (*domain.AccessToken, error) {
	tok, err := application.Lookup(ctx, s.tokens.Get, tokenID, "Access token")
	if err != nil {
		return nil, err
	}
	shop, err := application.OwnedShop(ctx, s.shops.Get, tok.ShopID, userID)
	if err != nil {
		return nil, domain.NotFound("Access token")
	}
	if tok.Status == domain.TokenStatusRevoked {
		return nil, domain.Conflict("Access token already revoked")
	}
	if err := s.tokens.SetStatus(ctx, tok.ID, domain.TokenStatusRevoked); err != nil {
		return nil, err
	}
	tok.Status = domain.TokenStatusRevoked
	tok.Shop = shop
	return tok, nil
}
