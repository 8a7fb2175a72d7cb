package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every OrderStatus in fulfilment order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping, OrderStatusDelivered, OrderStatusCancelled,
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:  {OrderStatusDelivered, OrderStatusCancelled},
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Final reports whether no further transition is possible.
func (s OrderStatus) Final() bool { return len(orderTransitions[s]) == 0 }

type Order struct {
	ID           int64       `dynamodbav:"order_id"`
	ShopID       int64       `dynamodbav:"shop_id"`
	CustomerID   int64       `dynamodbav:"customer_id"`
	ProductID    int64       `dynamodbav:"product_id"`
	Quantity     int         `dynamodbav:"quantity"`
	UnitPrice    Money       `dynamodbav:"unit_price"`
	TotalPrice   Money       `dynamodbav:"total_price"`
	Note         string      `dynamodbav:"note"`
	DeliveryUnit string      `dynamodbav:"delivery_unit"`
	Status       OrderStatus `dynamodbav:"status"`
	CreatedAt    time.Time   `dynamodbav:"created_at"`
	UpdatedAt    time.Time   `dynamodbav:"updated_at"`

	Customer *Customer `dynamodbav:"-"`
	Product  *Product  `dynamodbav:"-"`
}
