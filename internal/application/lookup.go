// Package application holds helpers shared by the business services in its
// subpackages.
package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/domain"
)

// Getter loads one entity by id, returning an error matching
// domain.ErrNotFound when it does not exist.
type Getter[T any] func(ctx context.Context, id int64) (*T, error)

// Lookup loads an entity and reports a missing one as "<entity> not found".
func Lookup[T any](ctx context.Context, get Getter[T], id int64, entity string) (*T, error) {
	v, err := get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound(entity)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// OwnedShop loads a shop owned by userID. Shops of other owners are reported
// exactly like missing ones.
func OwnedShop(ctx context.Context, get Getter[domain.Shop], shopID, userID int64) (*domain.Shop, error) {
	shop, err := Lookup(ctx, get, shopID, "Shop")
	if err != nil {
		return nil, err
	}
	if !shop.OwnedBy(userID) {
		return nil, domain.NotFound("Shop")
	}
	return shop, nil
}
