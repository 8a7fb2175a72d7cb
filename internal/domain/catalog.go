package domain

import "time"

type Customer struct {
	ID        int64     `dynamodbav:"customer_id"`
	ShopID    int64     `dynamodbav:"shop_id"`
	Fullname  string    `dynamodbav:"fullname"`
	Address   string    `dynamodbav:"address"`
	Phone     string    `dynamodbav:"phone"`
	Email     string    `dynamodbav:"email"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`

	Shop *Shop `dynamodbav:"-"`
}

type Product struct {
	ID           int64             `dynamodbav:"product_id"`
	ShopID       int64             `dynamodbav:"shop_id"`
	Name         string            `dynamodbav:"name"`
	Price        Money             `dynamodbav:"price"`
	Category     string            `dynamodbav:"category"`
	Stock        int               `dynamodbav:"stock"`
	Description  string            `dynamodbav:"description"`
	ImageURL     string            `dynamodbav:"image_url"`
	CustomFields map[string]string `dynamodbav:"custom_fields"`
	CreatedAt    time.Time         `dynamodbav:"created_at"`
	UpdatedAt    time.Time         `dynamodbav:"updated_at"`

	// Image is the base64 payload received with the request; it is uploaded to
	// object storage and never persisted in the table.
	Image string `dynamodbav:"-"`
	Shop  *Shop  `dynamodbav:"-"`
}

type Feedback struct {
	ID         int64     `dynamodbav:"feedback_id"`
	ShopID     int64     `dynamodbav:"shop_id"`
	CustomerID int64     `dynamodbav:"customer_id"`
	ProductID  int64     `dynamodbav:"product_id"`
	Content    string    `dynamodbav:"content"`
	CreatedAt  time.Time `dynamodbav:"created_at"`

	Customer *Customer `dynamodbav:"-"`
	Product  *Product  `dynamodbav:"-"`
}
