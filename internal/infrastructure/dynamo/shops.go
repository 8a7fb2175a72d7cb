package dynamo

import (
	"context"
	"time"

	"github.com/shop-assistant-api/internal/domain"
)

// ShopRepo provides typed DynamoDB operations for the shops table.
type ShopRepo struct {
	t   table[domain.Shop]
	ids *Counters
}

func NewShopRepo(client API, tableName string, ids *Counters) *ShopRepo {
	return &ShopRepo{t: newTable[domain.Shop](client, tableName, "shop_id", "shop"), ids: ids}
}

func (r *ShopRepo) Create(ctx context.Context, s *domain.Shop) error {
	id, err := r.ids.Next(ctx, "shops")
	if err != nil {
		return err
	}
	s.ID = id
	return r.t.create(ctx, s)
}

func (r *ShopRepo) Get(ctx context.Context, shopID int64) (*domain.Shop, error) {
	return r.t.get(ctx, shopID)
}

func (r *ShopRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Shop, error) {
	return r.t.queryIndex(ctx, indexOwner, "owner_id", numValue(ownerID))
}

func (r *ShopRepo) Update(ctx context.Context, s *domain.Shop) error {
	return r.t.update(ctx, s.ID, map[string]interface{}{
		"name":         s.Name,
		fieldUpdatedAt: s.UpdatedAt,
	}, nil)
}

func (r *ShopRepo) Delete(ctx context.Context, shopID int64) error {
	return r.t.delete(ctx, shopID)
}

// AccessTokenRepo provides typed DynamoDB operations for the access tokens table.
type AccessTokenRepo struct {
	t   table[domain.AccessToken]
	ids *Counters
}

func NewAccessTokenRepo(client API, tableName string, ids *Counters) *AccessTokenRepo {
	return &AccessTokenRepo{t: newTable[domain.AccessToken](client, tableName, "token_id", "access token"), ids: ids}
}

func (r *AccessTokenRepo) Create(ctx context.Context, tok *domain.AccessToken) error {
	id, err := r.ids.Next(ctx, "access_tokens")
	if err != nil {
		return err
	}
	tok.ID = id
	return r.t.create(ctx, tok)
}

func (r *AccessTokenRepo) Get(ctx context.Context, tokenID int64) (*domain.AccessToken, error) {
	return r.t.get(ctx, tokenID)
}

func (r *AccessTokenRepo) ListByShop(ctx context.Context, shopID int64) ([]domain.AccessToken, error) {
	return r.t.queryIndex(ctx, indexShop, "shop_id", numValue(shopID))
}

func (r *AccessTokenRepo) SetStatus(ctx context.Context, tokenID int64, status domain.TokenStatus) error {
	return r.t.update(ctx, tokenID, map[string]interface{}{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC(),
	}, nil)
}
