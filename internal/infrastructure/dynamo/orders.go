package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shop-assistant-api/internal/domain"
)

// OrderRepo provides typed DynamoDB operations for the orders table.
type OrderRepo struct {
	t   table[domain.Order]
	ids *Counters
}

func NewOrderRepo(client API, tableName string, ids *Counters) *OrderRepo {
	return &OrderRepo{t: newTable[domain.Order](client, tableName, "order_id", "order"), ids: ids}
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	id, err := r.ids.Next(ctx, "orders")
	if err != nil {
		return err
	}
	o.ID = id
	return r.t.create(ctx, o)
}

func (r *OrderRepo) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	return r.t.get(ctx, orderID)
}

// ListByShop returns the shop's orders, newest first.
func (r *OrderRepo) ListByShop(ctx context.Context, shopID int64) ([]domain.Order, error) {
	return r.t.queryIndex(ctx, indexShopCreated, "shop_id", numValue(shopID))
}

// Update writes the editable fields of o. It fails with domain.ErrConflict if
// the stored status no longer matches o.Status.
func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	return r.t.update(ctx, o.ID, map[string]interface{}{
		"quantity":      o.Quantity,
		"total_price":   o.TotalPrice,
		"note":          o.Note,
		"delivery_unit": o.DeliveryUnit,
		fieldUpdatedAt:  o.UpdatedAt,
	}, &condition{
		expr:   "#cur = :st",
		names:  map[string]string{"#cur": fieldStatus},
		values: map[string]types.AttributeValue{":st": strValue(string(o.Status))},
	})
}

// TransitionStatus moves the order from one status to another. It fails with
// domain.ErrConflict if the stored status is no longer from.
func (r *OrderRepo) TransitionStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) error {
	return r.t.update(ctx, orderID, map[string]interface{}{
		fieldStatus:    to,
		fieldUpdatedAt: time.Now().UTC(),
	}, &condition{
		expr:   "#cur = :from",
		names:  map[string]string{"#cur": fieldStatus},
		values: map[string]types.AttributeValue{":from": strValue(string(from))},
	})
}
