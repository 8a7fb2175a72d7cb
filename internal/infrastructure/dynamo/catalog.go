package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shop-assistant-api/internal/domain"
)

// CustomerRepo provides typed DynamoDB operations for the customers table.
type CustomerRepo struct {
	t   table[domain.Customer]
	ids *Counters
}

func NewCustomerRepo(client API, tableName string, ids *Counters) *CustomerRepo {
	return &CustomerRepo{t: newTable[domain.Customer](client, tableName, "customer_id", "customer"), ids: ids}
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	id, err := r.ids.Next(ctx, "customers")
	if err != nil {
		return err
	}
	c.ID = id
	return r.t.create(ctx, c)
}

func (r *CustomerRepo) Get(ctx context.Context, customerID int64) (*domain.Customer, error) {
	return r.t.get(ctx, customerID)
}

func (r *CustomerRepo) ListByShop(ctx context.Context, shopID int64) ([]domain.Customer, error) {
	return r.t.queryIndex(ctx, indexShop, "shop_id", numValue(shopID))
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	return r.t.update(ctx, c.ID, map[string]interface{}{
		"fullname":     c.Fullname,
		"address":      c.Address,
		"phone":        c.Phone,
		"email":        c.Email,
		fieldUpdatedAt: c.UpdatedAt,
	}, nil)
}

func (r *CustomerRepo) Delete(ctx context.Context, customerID int64) error {
	return r.t.delete(ctx, customerID)
}

// ProductRepo provides typed DynamoDB operations for the products table.
type ProductRepo struct {
	t   table[domain.Product]
	ids *Counters
}

func NewProductRepo(client API, tableName string, ids *Counters) *ProductRepo {
	return &ProductRepo{t: newTable[domain.Product](client, tableName, "product_id", "product"), ids: ids}
}

// NextID reserves a product id ahead of Create so the image object key can
// carry it.
func (r *ProductRepo) NextID(ctx context.Context) (int64, error) {
	return r.ids.Next(ctx, "products")
}

// Create stores p, assigning an id when p has none.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		id, err := r.NextID(ctx)
		if err != nil {
			return err
		}
		p.ID = id
	}
	return r.t.create(ctx, p)
}

func (r *ProductRepo) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	return r.t.get(ctx, productID)
}

func (r *ProductRepo) ListByShop(ctx context.Context, shopID int64) ([]domain.Product, error) {
	return r.t.queryIndex(ctx, indexShop, "shop_id", numValue(shopID))
}

// Update writes the descriptive fields of p. Stock is only written when
// setStock is true; otherwise concurrent reservations are left untouched.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product, setStock bool) error {
	fields := map[string]interface{}{
		"name":          p.Name,
		"price":         p.Price,
		"category":      p.Category,
		"description":   p.Description,
		fieldImageURL:   p.ImageURL,
		"custom_fields": p.CustomFields,
		fieldUpdatedAt:  p.UpdatedAt,
	}
	if setStock {
		fields[fieldStock] = p.Stock
	}
	return r.t.update(ctx, p.ID, fields, nil)
}

func (r *ProductRepo) Delete(ctx context.Context, productID int64) error {
	return r.t.delete(ctx, productID)
}

// AdjustStock adds delta to the stock. A negative delta fails with
// domain.ErrConflict when the stock would drop below zero.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID int64, delta int) error {
	var cond *condition
	if delta < 0 {
		cond = &condition{expr: "#a >= :need", values: map[string]types.AttributeValue{":need": numValue(int64(-delta))}}
	}
	_, err := r.t.adjust(ctx, productID, fieldStock, numValue(int64(delta)), cond)
	return err
}

// FeedbackRepo provides typed DynamoDB operations for the feedbacks table.
type FeedbackRepo struct {
	t   table[domain.Feedback]
	ids *Counters
}

func NewFeedbackRepo(client API, tableName string, ids *Counters) *FeedbackRepo {
	return &FeedbackRepo{t: newTable[domain.Feedback](client, tableName, "feedback_id", "feedback"), ids: ids}
}

func (r *FeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	id, err := r.ids.Next(ctx, "feedbacks")
	if err != nil {
		return err
	}
	f.ID = id
	return r.t.create(ctx, f)
}

func (r *FeedbackRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Feedback, error) {
	return r.t.queryIndex(ctx, indexProduct, "product_id", numValue(productID))
}
