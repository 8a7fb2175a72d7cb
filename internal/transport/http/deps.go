package http

import (
	"github.com/shop-assistant-api/internal/application/accesstoken"
	"github.com/shop-assistant-api/internal/application/customer"
	"github.com/shop-assistant-api/internal/application/feedback"
	"github.com/shop-assistant-api/internal/application/image"
	"github.com/shop-assistant-api/internal/application/order"
	"github.com/shop-assistant-api/internal/application/payment"
	"github.com/shop-assistant-api/internal/application/product"
	"github.com/shop-assistant-api/internal/application/shop"
	"github.com/shop-assistant-api/internal/application/user"
	"github.com/shop-assistant-api/internal/apperror"
	"github.com/shop-assistant-api/internal/mapper"
	appmiddleware "github.com/shop-assistant-api/internal/transport/http/middleware"
)

// Deps holds everything the router needs to build its handlers.
type Deps struct {
	Users        user.Service
	Shops        shop.Service
	AccessTokens accesstoken.Service
	Customers    customer.Service
	Products     product.Service
	Orders       order.Service
	Feedbacks    feedback.Service
	Payments     payment.Service
	Images       image.Service

	// Tokens verifies bearer tokens for the authenticated routes.
	Tokens     appmiddleware.TokenVerifier
	Classifier *apperror.Classifier
	Mapper     *mapper.Mapper
}
