package dynamo

import (
	"context"
	"time"

	"github.com/shop-assistant-api/internal/domain"
)

// ImageRequestRepo provides typed DynamoDB operations for the image requests table.
type ImageRequestRepo struct {
	t   table[domain.ImageRequest]
	ids *Counters
}

func NewImageRequestRepo(client API, tableName string, ids *Counters) *ImageRequestRepo {
	return &ImageRequestRepo{t: newTable[domain.ImageRequest](client, tableName, "image_id", "image request"), ids: ids}
}

func (r *ImageRequestRepo) Create(ctx context.Context, req *domain.ImageRequest) error {
	id, err := r.ids.Next(ctx, "image_requests")
	if err != nil {
		return err
	}
	req.ID = id
	return r.t.create(ctx, req)
}

// Complete records the outcome of a generation call.
func (r *ImageRequestRepo) Complete(ctx context.Context, requestID int64, status domain.ImageStatus, imageURL string) error {
	return r.t.update(ctx, requestID, map[string]interface{}{
		fieldStatus:    status,
		fieldImageURL:  imageURL,
		fieldUpdatedAt: time.Now().UTC(),
	}, nil)
}

// ListByProduct returns the product's requests, newest first.
func (r *ImageRequestRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.ImageRequest, error) {
	return r.t.queryIndex(ctx, indexProduct, "product_id", numValue(productID))
}
