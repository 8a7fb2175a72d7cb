package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shop-assistant-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatable interface{ Validate() error }

func decode[T validatable](t *testing.T, raw string) T {
	t.Helper()
	var in T
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return in
}

func violation(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve
}

func TestVNPayCreateInput_BelowMinimum(t *testing.T) {
	in := decode[VNPayCreateInput](t, `{"amount": 5000}`)
	ve := violation(t, in.Validate())
	assert.Equal(t, "amount", ve.Field)
	assert.Equal(t, MsgVNPayAmountMin, ve.Message)
}

func TestVNPayCreateInput_Valid(t *testing.T) {
	in := decode[VNPayCreateInput](t, `{"amount": 10000, "bankCode": "NCB", "language": "vn"}`)
	assert.NoError(t, in.Validate())
	assert.Equal(t, domain.DefaultVNPayDescription, in.OrderInfo())
}

func TestVNPayCreateInput_AmountAsString(t *testing.T) {
	in := decode[VNPayCreateInput](t, `{"amount": "25000.50", "description": "top up"}`)
	assert.NoError(t, in.Validate())
	assert.Equal(t, "top up", in.OrderInfo())
}

func TestVNPayCreateInput_BadLanguage(t *testing.T) {
	in := decode[VNPayCreateInput](t, `{"amount": 10000, "language": "fr"}`)
	assert.Equal(t, "language", violation(t, in.Validate()).Field)
}

func TestRegistrationInput_BlankPassword(t *testing.T) {
	in := decode[RegistrationInput](t, `{"email": "a@b.com", "password": ""}`)
	ve := violation(t, in.Validate())
	assert.Equal(t, "password", ve.Field)
}

func TestRegistrationInput_FirstViolationWins(t *testing.T) {
	in := decode[RegistrationInput](t, `{"email": "", "password": ""}`)
	ve := violation(t, in.Validate())
	assert.Equal(t, "email", ve.Field)
	assert.Equal(t, MsgEmailRequired, ve.Message)
}

func TestRegistrationInput_InvalidEmail(t *testing.T) {
	in := decode[RegistrationInput](t, `{"email": "nope", "password": "secret"}`)
	ve := violation(t, in.Validate())
	assert.Equal(t, "email", ve.Field)
	assert.Equal(t, MsgEmailInvalid, ve.Message)
}

func TestCustomerInput_Order(t *testing.T) {
	in := decode[CustomerInput](t, `{"shopId": 3, "fullname": "Lan", "address": "", "phone": "", "email": "x"}`)
	assert.Equal(t, "address", violation(t, in.Validate()).Field)

	in = decode[CustomerInput](t, `{"fullname": "Lan"}`)
	assert.Equal(t, "shopId", violation(t, in.Validate()).Field)

	in = decode[CustomerInput](t, `{"shopId": 0, "fullname": "Lan"}`)
	ve := violation(t, in.Validate())
	assert.Equal(t, "shopId", ve.Field)
	assert.Equal(t, MsgIDInvalid, ve.Message)
}

func TestProductInput(t *testing.T) {
	in := decode[ProductInput](t, `{"name": "Tea", "price": -1, "category": "drinks", "stock": 1}`)
	assert.Equal(t, "price", violation(t, in.Validate()).Field)

	in = decode[ProductInput](t, `{"name": "Tea", "price": 0, "category": "drinks", "stock": 0}`)
	assert.NoError(t, in.Validate(), "zero price and stock are allowed")

	in = decode[ProductInput](t, `{"name": "Tea", "price": 10, "category": "drinks"}`)
	assert.Equal(t, "stock", violation(t, in.Validate()).Field)

	in = decode[ProductInput](t, `{"name": "Tea", "price": 10, "category": "drinks", "stock": 2, "image": "not base64!"}`)
	assert.Equal(t, "image", violation(t, in.Validate()).Field)
}

func TestProductUpdateInput_OnlyChecksPresentFields(t *testing.T) {
	assert.NoError(t, decode[ProductUpdateInput](t, `{}`).Validate())
	assert.Equal(t, "name", violation(t, decode[ProductUpdateInput](t, `{"name": " "}`).Validate()).Field)
	assert.Equal(t, "stock", violation(t, decode[ProductUpdateInput](t, `{"stock": -2}`).Validate()).Field)
}

func TestOrderInput_QuantityMin(t *testing.T) {
	in := decode[OrderInput](t, `{"customerId": 1, "productId": 2, "quantity": 0}`)
	ve := violation(t, in.Validate())
	assert.Equal(t, "quantity", ve.Field)
	assert.Equal(t, MsgQuantityMin, ve.Message)
}

func TestOrderStatusInput(t *testing.T) {
	assert.NoError(t, decode[OrderStatusInput](t, `{"status": "SHIPPING"}`).Validate())
	assert.Equal(t, "status", violation(t, decode[OrderStatusInput](t, `{"status": "LOST"}`).Validate()).Field)
}

func TestAccessTokenInput_Method(t *testing.T) {
	in := decode[AccessTokenInput](t, `{"token": "abc", "method": "PIGEON", "shopId": 1}`)
	ve := violation(t, in.Validate())
	assert.Equal(t, "method", ve.Field)
	assert.Equal(t, MsgMethodInvalid, ve.Message)
}

func TestPaymentInput_AmountMustBePositive(t *testing.T) {
	in := decode[PaymentInput](t, `{"userId": 1, "amount": 0}`)
	assert.Equal(t, MsgAmountPositive, violation(t, in.Validate()).Message)
}

func TestBalanceDeductionInput(t *testing.T) {
	assert.Equal(t, "amount", violation(t, decode[BalanceDeductionInput](t, `{"amount": 0.001}`).Validate()).Field)
	assert.NoError(t, decode[BalanceDeductionInput](t, `{"amount": 0.01}`).Validate())
	assert.Equal(t, MsgAmountRequired, violation(t, decode[BalanceDeductionInput](t, `{}`).Validate()).Message)
}

func TestFeedbackAndImageInputs(t *testing.T) {
	assert.Equal(t, "content", violation(t, decode[FeedbackInput](t, `{"customerId": 1, "productId": 2, "content": "  "}`).Validate()).Field)
	assert.Equal(t, "prompt", violation(t, decode[ImageGenerationInput](t, `{"productId": 2}`).Validate()).Field)
	assert.NoError(t, decode[ImageGenerationInput](t, `{"productId": 2, "prompt": "a teapot"}`).Validate())
}
