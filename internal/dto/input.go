// Package dto defines the wire shapes accepted from and returned to clients.
//
// Input types carry no system-assigned fields (ids, timestamps, computed
// status). Each one exposes Validate, which reports the first violated field
// in declaration order as a *domain.ValidationError.
package dto

import (
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/pkg/validate"
	"github.com/shopspring/decimal"
)

var (
	vnpayMinAmount     = decimal.NewFromInt(10000)
	deductionMinAmount = decimal.RequireFromString("0.01")
)

// Validation messages, as shown to clients.
const (
	MsgEmailRequired       = "Email không được để trống"
	MsgEmailInvalid        = "Email không hợp lệ"
	MsgPasswordRequired    = "Mật khẩu không được để trống"
	MsgPasswordTooLong     = "Mật khẩu không được vượt quá 72 ký tự"
	MsgIDTokenRequired     = "ID token không được để trống"
	MsgShopNameRequired    = "Tên cửa hàng không được để trống"
	MsgShopNameTooLong     = "Tên cửa hàng không được vượt quá 255 ký tự"
	MsgTokenRequired       = "Access token không được để trống"
	MsgMethodInvalid       = "Phương thức kết nối không hợp lệ"
	MsgShopIDRequired      = "Shop ID không được để trống"
	MsgFullnameRequired    = "Họ tên không được để trống"
	MsgAddressRequired     = "Địa chỉ không được để trống"
	MsgPhoneRequired       = "Số điện thoại không được để trống"
	MsgProductNameRequired = "Tên sản phẩm không được để trống"
	MsgPriceRequired       = "Giá sản phẩm không được để trống"
	MsgPriceNegative       = "Giá sản phẩm không được âm"
	MsgCategoryRequired    = "Danh mục không được để trống"
	MsgStockRequired       = "Số lượng tồn kho không được để trống"
	MsgStockNegative       = "Số lượng tồn kho không được âm"
	MsgImageInvalid        = "Ảnh phải được mã hóa base64"
	MsgCustomerIDRequired  = "Customer ID không được để trống"
	MsgProductIDRequired   = "Product ID không được để trống"
	MsgQuantityRequired    = "Số lượng không được để trống"
	MsgQuantityMin         = "Số lượng phải lớn hơn hoặc bằng 1"
	MsgStatusInvalid       = "Trạng thái đơn hàng không hợp lệ"
	MsgContentRequired     = "Nội dung phản hồi không được để trống"
	MsgUserIDRequired      = "User ID không được để trống"
	MsgAmountRequired      = "Số tiền không được để trống"
	MsgAmountPositive      = "Số tiền phải lớn hơn 0"
	MsgVNPayAmountMin      = "Số tiền thanh toán tối thiểu là 10,000 VND"
	MsgBankCodeInvalid     = "Mã ngân hàng không hợp lệ"
	MsgLanguageInvalid     = "Ngôn ngữ chỉ hỗ trợ vn hoặc en"
	MsgDeductionAmountMin  = "Số tiền trừ tối thiểu là 0.01"
	MsgPromptRequired      = "Prompt không được để trống"
	MsgIDInvalid           = "ID phải là số dương"
)

func requiredID(field string, id *int64, msg string) []validate.Rule {
	return []validate.Rule{
		validate.Present(field, id, msg),
		validate.MinInt(field, id, 1, MsgIDInvalid),
	}
}

func chain(groups ...[]validate.Rule) error {
	var rules []validate.Rule
	for _, g := range groups {
		rules = append(rules, g...)
	}
	return validate.First(rules...)
}

type RegistrationInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegistrationInput) Validate() error {
	return validate.First(
		validate.NotBlank("email", in.Email, MsgEmailRequired),
		validate.Email("email", in.Email, MsgEmailInvalid),
		validate.NotBlank("password", in.Password, MsgPasswordRequired),
		validate.MaxLen("password", in.Password, 72, MsgPasswordTooLong),
	)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validate.First(
		validate.NotBlank("email", in.Email, MsgEmailRequired),
		validate.NotBlank("password", in.Password, MsgPasswordRequired),
	)
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken"`
}

func (in GoogleLoginInput) Validate() error {
	return validate.NotBlank("idToken", in.IDToken, MsgIDTokenRequired)()
}

type ShopInput struct {
	Name string `json:"name"`
}

func (in ShopInput) Validate() error {
	return validate.First(
		validate.NotBlank("name", in.Name, MsgShopNameRequired),
		validate.MaxLen("name", in.Name, 255, MsgShopNameTooLong),
	)
}

type AccessTokenInput struct {
	Token  string                  `json:"token"`
	Method domain.ConnectionMethod `json:"method"`
	ShopID *int64                  `json:"shopId"`
}

func (in AccessTokenInput) Validate() error {
	return chain(
		[]validate.Rule{
			validate.NotBlank("token", in.Token, MsgTokenRequired),
			validate.OneOf("method", in.Method, domain.ConnectionMethods, MsgMethodInvalid),
		},
		requiredID("shopId", in.ShopID, MsgShopIDRequired),
	)
}

type CustomerInput struct {
	ShopID   *int64 `json:"shopId"`
	Fullname string `json:"fullname"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (in CustomerInput) Validate() error {
	return chain(
		requiredID("shopId", in.ShopID, MsgShopIDRequired),
		[]validate.Rule{
			validate.NotBlank("fullname", in.Fullname, MsgFullnameRequired),
			validate.NotBlank("address", in.Address, MsgAddressRequired),
			validate.NotBlank("phone", in.Phone, MsgPhoneRequired),
			validate.NotBlank("email", in.Email, MsgEmailRequired),
			validate.Email("email", in.Email, MsgEmailInvalid),
		},
	)
}

// CustomerUpdateInput is a partial update; nil fields are left untouched.
type CustomerUpdateInput struct {
	Fullname *string `json:"fullname"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

func (in CustomerUpdateInput) Validate() error {
	var rules []validate.Rule
	if in.Fullname != nil {
		rules = append(rules, validate.NotBlank("fullname", *in.Fullname, MsgFullnameRequired))
	}
	if in.Address != nil {
		rules = append(rules, validate.NotBlank("address", *in.Address, MsgAddressRequired))
	}
	if in.Phone != nil {
		rules = append(rules, validate.NotBlank("phone", *in.Phone, MsgPhoneRequired))
	}
	if in.Email != nil {
		rules = append(rules,
			validate.NotBlank("email", *in.Email, MsgEmailRequired),
			validate.Email("email", *in.Email, MsgEmailInvalid),
		)
	}
	return validate.First(rules...)
}

type ProductInput struct {
	Name         string            `json:"name"`
	Price        *decimal.Decimal  `json:"price"`
	Category     string            `json:"category"`
	Stock        *int              `json:"stock"`
	Description  string            `json:"description"`
	Image        string            `json:"image"`
	CustomFields map[string]string `json:"customFields"`
}

func (in ProductInput) Validate() error {
	return validate.First(
		validate.NotBlank("name", in.Name, MsgProductNameRequired),
		validate.Present("price", in.Price, MsgPriceRequired),
		validate.MinDecimal("price", in.Price, decimal.Zero, MsgPriceNegative),
		validate.NotBlank("category", in.Category, MsgCategoryRequired),
		validate.Present("stock", in.Stock, MsgStockRequired),
		validate.MinInt("stock", in.Stock, 0, MsgStockNegative),
		validate.Base64("image", in.Image, MsgImageInvalid),
	)
}

// ProductUpdateInput is a partial update; nil fields are left untouched. A
// non-nil CustomFields replaces the whole mapping.
type ProductUpdateInput struct {
	Name         *string           `json:"name"`
	Price        *decimal.Decimal  `json:"price"`
	Category     *string           `json:"category"`
	Stock        *int              `json:"stock"`
	Description  *string           `json:"description"`
	Image        *string           `json:"image"`
	CustomFields map[string]string `json:"customFields"`
}

func (in ProductUpdateInput) Validate() error {
	var rules []validate.Rule
	if in.Name != nil {
		rules = append(rules, validate.NotBlank("name", *in.Name, MsgProductNameRequired))
	}
	rules = append(rules, validate.MinDecimal("price", in.Price, decimal.Zero, MsgPriceNegative))
	if in.Category != nil {
		rules = append(rules, validate.NotBlank("category", *in.Category, MsgCategoryRequired))
	}
	rules = append(rules, validate.MinInt("stock", in.Stock, 0, MsgStockNegative))
	if in.Image != nil {
		rules = append(rules, validate.Base64("image", *in.Image, MsgImageInvalid))
	}
	return validate.First(rules...)
}

type OrderInput struct {
	CustomerID   *int64 `json:"customerId"`
	ProductID    *int64 `json:"productId"`
	Quantity     *int   `json:"quantity"`
	Note         string `json:"note"`
	DeliveryUnit string `json:"deliveryUnit"`
}

func (in OrderInput) Validate() error {
	return chain(
		requiredID("customerId", in.CustomerID, MsgCustomerIDRequired),
		requiredID("productId", in.ProductID, MsgProductIDRequired),
		[]validate.Rule{
			validate.Present("quantity", in.Quantity, MsgQuantityRequired),
			validate.MinInt("quantity", in.Quantity, 1, MsgQuantityMin),
		},
	)
}

// OrderUpdateInput is a partial update of the client-editable order fields.
type OrderUpdateInput struct {
	Quantity     *int    `json:"quantity"`
	Note         *string `json:"note"`
	DeliveryUnit *string `json:"deliveryUnit"`
}

func (in OrderUpdateInput) Validate() error {
	return validate.MinInt("quantity", in.Quantity, 1, MsgQuantityMin)()
}

type OrderStatusInput struct {
	Status domain.OrderStatus `json:"status"`
}

func (in OrderStatusInput) Validate() error {
	return validate.OneOf("status", in.Status, domain.OrderStatuses, MsgStatusInvalid)()
}

type FeedbackInput struct {
	CustomerID *int64 `json:"customerId"`
	ProductID  *int64 `json:"productId"`
	Content    string `json:"content"`
}

func (in FeedbackInput) Validate() error {
	return chain(
		requiredID("customerId", in.CustomerID, MsgCustomerIDRequired),
		requiredID("productId", in.ProductID, MsgProductIDRequired),
		[]validate.Rule{validate.NotBlank("content", in.Content, MsgContentRequired)},
	)
}

type PaymentInput struct {
	UserID      *int64           `json:"userId"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
}

func (in PaymentInput) Validate() error {
	return chain(
		requiredID("userId", in.UserID, MsgUserIDRequired),
		[]validate.Rule{
			validate.Present("amount", in.Amount, MsgAmountRequired),
			validate.PositiveDecimal("amount", in.Amount, MsgAmountPositive),
		},
	)
}

type VNPayCreateInput struct {
	Amount      *decimal.Decimal `json:"amount"`
	BankCode    string           `json:"bankCode"`
	Language    string           `json:"language"`
	Description string           `json:"description"`
}

func (in VNPayCreateInput) Validate() error {
	return validate.First(
		validate.Present("amount", in.Amount, MsgAmountRequired),
		validate.MinDecimal("amount", in.Amount, vnpayMinAmount, MsgVNPayAmountMin),
		validate.Tag("bankCode", in.BankCode, "alphanum,max=20", MsgBankCodeInvalid),
		validate.Tag("language", in.Language, "oneof=vn en", MsgLanguageInvalid),
	)
}

// OrderInfo returns the description, or the default top-up text when blank.
func (in VNPayCreateInput) OrderInfo() string {
	if in.Description == "" {
		return domain.DefaultVNPayDescription
	}
	return in.Description
}

type BalanceDeductionInput struct {
	Amount *decimal.Decimal `json:"amount"`
}

func (in BalanceDeductionInput) Validate() error {
	return validate.First(
		validate.Present("amount", in.Amount, MsgAmountRequired),
		validate.MinDecimal("amount", in.Amount, deductionMinAmount, MsgDeductionAmountMin),
	)
}

type ImageGenerationInput struct {
	ProductID *int64 `json:"productId"`
	Prompt    string `json:"prompt"`
	FileName  string `json:"fileName"`
	Model     string `json:"model"`
}

func (in ImageGenerationInput) Validate() error {
	return chain(
		requiredID("productId", in.ProductID, MsgProductIDRequired),
		[]validate.Rule{validate.NotBlank("prompt", in.Prompt, MsgPromptRequired)},
	)
}
