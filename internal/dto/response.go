package dto

import (
	"time"

	"github.com/shop-assistant-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Response DTOs flatten every relationship to <relation>Id plus an optional
// <relation>Name; none of them nests another entity.

type UserResponse struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	FullName  string            `json:"fullName,omitempty"`
	Balance   decimal.Decimal   `json:"balance"`
	Admin     bool              `json:"admin"`
	Status    domain.UserStatus `json:"status"`
	Birthdate *time.Time        `json:"birthdate"`
	CreatedAt time.Time         `json:"createdAt"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type ShopResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Status    domain.ShopStatus `json:"status"`
	OwnerID   int64             `json:"ownerId"`
	OwnerName string            `json:"ownerName,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type AccessTokenResponse struct {
	ID        int64                   `json:"id"`
	Token     string                  `json:"token"`
	Method    domain.ConnectionMethod `json:"method"`
	Status    domain.TokenStatus      `json:"status"`
	ShopID    int64                   `json:"shopId"`
	ShopName  string                  `json:"shopName,omitempty"`
	UserID    int64                   `json:"userId"`
	CreatedAt time.Time               `json:"createdAt"`
}

type CustomerResponse struct {
	ID        int64     `json:"id"`
	ShopID    int64     `json:"shopId"`
	ShopName  string    `json:"shopName,omitempty"`
	Fullname  string    `json:"fullname"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductResponse struct {
	ID           int64             `json:"id"`
	ShopID       int64             `json:"shopId"`
	ShopName     string            `json:"shopName,omitempty"`
	Name         string            `json:"name"`
	Price        decimal.Decimal   `json:"price"`
	Category     string            `json:"category"`
	Stock        int               `json:"stock"`
	Description  string            `json:"description,omitempty"`
	Image        string            `json:"image,omitempty"`
	ImageURL     string            `json:"imageUrl,omitempty"`
	CustomFields map[string]string `json:"customFields"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type OrderResponse struct {
	ID           int64              `json:"id"`
	ShopID       int64              `json:"shopId"`
	CustomerID   int64              `json:"customerId"`
	CustomerName string             `json:"customerName,omitempty"`
	ProductID    int64              `json:"productId"`
	ProductName  string             `json:"productName,omitempty"`
	Quantity     int                `json:"quantity"`
	UnitPrice    decimal.Decimal    `json:"unitPrice"`
	TotalPrice   decimal.Decimal    `json:"totalPrice"`
	Note         string             `json:"note,omitempty"`
	DeliveryUnit string             `json:"deliveryUnit,omitempty"`
	Status       domain.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type FeedbackResponse struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customerId"`
	CustomerName string    `json:"customerName,omitempty"`
	ProductID    int64     `json:"productId"`
	ProductName  string    `json:"productName,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PaymentResponse struct {
	ID          int64                   `json:"id"`
	UserID      int64                   `json:"userId"`
	Amount      decimal.Decimal         `json:"amount"`
	Description string                  `json:"description,omitempty"`
	Method      domain.PaymentMethod    `json:"method"`
	Direction   domain.PaymentDirection `json:"direction"`
	Status      domain.PaymentStatus    `json:"status"`
	TxnRef      string                  `json:"txnRef,omitempty"`
	BankCode    string                  `json:"bankCode,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
}

type VNPayCreateResponse struct {
	PaymentID  int64  `json:"paymentId"`
	TxnRef     string `json:"txnRef"`
	PaymentURL string `json:"paymentUrl"`
}

// VNPayIPNResponse is the acknowledgement the gateway expects from the
// server-to-server notification. Field names are fixed by the gateway.
type VNPayIPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

type ImageGenerationResponse struct {
	ID          int64              `json:"id"`
	ProductID   int64              `json:"productId"`
	ProductName string             `json:"productName,omitempty"`
	Prompt      string             `json:"prompt"`
	FileName    string             `json:"fileName,omitempty"`
	Model       string             `json:"model,omitempty"`
	Status      domain.ImageStatus `json:"status"`
	ImageURL    string             `json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// MessageResponse is returned by endpoints with nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}
