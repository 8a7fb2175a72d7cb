package domain

import "time"

type ImageStatus string

const (
	ImageStatusPending   ImageStatus = "PENDING"
	ImageStatusCompleted ImageStatus = "COMPLETED"
	ImageStatusFailed    ImageStatus = "FAILED"
)

// ImageRequest records one image-generation call for a product.
type ImageRequest struct {
	ID        int64       `dynamodbav:"image_id"`
	ProductID int64       `dynamodbav:"product_id"`
	UserID    int64       `dynamodbav:"user_id"`
	Prompt    string      `dynamodbav:"prompt"`
	FileName  string      `dynamodbav:"file_name"`
	Model     string      `dynamodbav:"model"`
	Status    ImageStatus `dynamodbav:"status"`
	ImageURL  string      `dynamodbav:"image_url"`
	CreatedAt time.Time   `dynamodbav:"created_at"`
	UpdatedAt time.Time   `dynamodbav:"updated_at"`

	Product *Product `dynamodbav:"-"`
}
