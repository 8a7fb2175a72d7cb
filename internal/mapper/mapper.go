// Package mapper converts between request inputs, domain entities and
// response DTOs.
//
// Entity builders never read ids, timestamps or status from the input; those
// are assigned here or by storage. Related entities are passed in already
// resolved, and a nil reference is reported as ErrNilReference.
package mapper

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shopspring/decimal"
)

// ErrNilReference means a caller passed a nil related entity to a builder.
var ErrNilReference = errors.New("nil entity reference")

const authProviderLocal = "local"

type Mapper struct {
	now func() time.Time
}

func New() *Mapper {
	return NewWithClock(func() time.Time { return time.Now().UTC() })
}

// NewWithClock returns a Mapper that stamps entities with now().
func NewWithClock(now func() time.Time) *Mapper {
	return &Mapper{now: now}
}

func nilRef(name string) error {
	return errors.WithMessage(ErrNilReference, name)
}

func money(d *decimal.Decimal) domain.Money {
	if d == nil {
		return domain.NewMoney(decimal.Zero)
	}
	return domain.NewMoney(*d)
}

// --- users ---

// UserFromRegistration builds a pending local account with zero balance.
func (m *Mapper) UserFromRegistration(in dto.RegistrationInput, passwordHash string) *domain.User {
	now := m.now()
	return &domain.User{
		Email:        in.Email,
		EmailKey:     domain.EmailKey(in.Email),
		PasswordHash: passwordHash,
		Balance:      domain.NewMoney(decimal.Zero),
		Status:       domain.UserStatusPending,
		AuthProvider: authProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (m *Mapper) ToUserResponse(u *domain.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Balance:   u.Balance.Decimal,
		Admin:     u.Admin,
		Status:    u.Status,
		Birthdate: u.Birthdate,
		CreatedAt: u.CreatedAt,
	}
}

// --- shops ---

func (m *Mapper) ShopFromInput(in dto.ShopInput, owner *domain.User) (*domain.Shop, error) {
	if owner == nil {
		return nil, nilRef("owner")
	}
	now := m.now()
	return &domain.Shop{
		Name:      in.Name,
		OwnerID:   owner.ID,
		Status:    domain.ShopStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		Owner:     owner,
	}, nil
}

// UpdateShop applies in to s. Owner and status are not client-editable.
func (m *Mapper) UpdateShop(s *domain.Shop, in dto.ShopInput) {
	s.Name = in.Name
	s.UpdatedAt = m.now()
}

func (m *Mapper) ToShopResponse(s *domain.Shop) *dto.ShopResponse {
	if s == nil {
		return nil
	}
	resp := &dto.ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Status:    s.Status,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Owner != nil {
		resp.OwnerName = displayName(s.Owner)
	}
	return resp
}

func displayName(u *domain.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// --- access tokens ---

func (m *Mapper) AccessTokenFromInput(in dto.AccessTokenInput, shop *domain.Shop, user *domain.User) (*domain.AccessToken, error) {
	if shop == nil {
		return nil, nilRef("shop")
	}
	if user == nil {
		return nil, nilRef("user")
	}
	now := m.now()
	return &domain.AccessToken{
		Token:     in.Token,
		Method:    in.Method,
		Status:    domain.TokenStatusActive,
		ShopID:    shop.ID,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Shop:      shop,
		User:      user,
	}, nil
}

func (m *Mapper) ToAccessTokenResponse(t *domain.AccessToken) *dto.AccessTokenResponse {
	if t == nil {
		return nil
	}
	resp := &dto.AccessTokenResponse{
		ID:        t.ID,
		Token:     t.Token,
		Method:    t.Method,
		Status:    t.Status,
		ShopID:    t.ShopID,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
	}
	if t.Shop != nil {
		resp.ShopName = t.Shop.Name
	}
	return resp
}

// --- customers ---

func (m *Mapper) CustomerFromInput(in dto.CustomerInput, shop *domain.Shop) (*domain.Customer, error) {
	if shop == nil {
		return nil, nilRef("shop")
	}
	now := m.now()
	return &domain.Customer{
		ShopID:    shop.ID,
		Fullname:  in.Fullname,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
		Shop:      shop,
	}, nil
}

// UpdateCustomer copies the non-nil fields of in onto c.
func (m *Mapper) UpdateCustomer(c *domain.Customer, in dto.CustomerUpdateInput) {
	if in.Fullname != nil {
		c.Fullname = *in.Fullname
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	c.UpdatedAt = m.now()
}

func (m *Mapper) ToCustomerResponse(c *domain.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	resp := &dto.CustomerResponse{
		ID:        c.ID,
		ShopID:    c.ShopID,
		Fullname:  c.Fullname,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Shop != nil {
		resp.ShopName = c.Shop.Name
	}
	return resp
}

// --- products ---

func (m *Mapper) ProductFromInput(in dto.ProductInput, shop *domain.Shop) (*domain.Product, error) {
	if shop == nil {
		return nil, nilRef("shop")
	}
	now := m.now()
	p := &domain.Product{
		ShopID:       shop.ID,
		Name:         in.Name,
		Price:        money(in.Price),
		Category:     in.Category,
		Description:  in.Description,
		CustomFields: copyFields(in.CustomFields),
		Image:        in.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
		Shop:         shop,
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	return p, nil
}

// UpdateProduct copies the non-nil fields of in onto p. A non-nil
// CustomFields replaces the whole mapping.
func (m *Mapper) UpdateProduct(p *domain.Product, in dto.ProductUpdateInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = domain.NewMoney(*in.Price)
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.CustomFields != nil {
		p.CustomFields = copyFields(in.CustomFields)
	}
	p.UpdatedAt = m.now()
}

func copyFields(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *Mapper) ToProductResponse(p *domain.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:           p.ID,
		ShopID:       p.ShopID,
		Name:         p.Name,
		Price:        p.Price.Decimal,
		Category:     p.Category,
		Stock:        p.Stock,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		CustomFields: copyFields(p.CustomFields),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Shop != nil {
		resp.ShopName = p.Shop.Name
	}
	return resp
}

// --- orders ---

// OrderFromInput builds a pending order for product. The unit price is the
// product's current price and the shop is the product's shop.
func (m *Mapper) OrderFromInput(in dto.OrderInput, customer *domain.Customer, product *domain.Product) (*domain.Order, error) {
	if customer == nil {
		return nil, nilRef("customer")
	}
	if product == nil {
		return nil, nilRef("product")
	}
	qty := 0
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	now := m.now()
	return &domain.Order{
		ShopID:       product.ShopID,
		CustomerID:   customer.ID,
		ProductID:    product.ID,
		Quantity:     qty,
		UnitPrice:    product.Price,
		TotalPrice:   total(product.Price, qty),
		Note:         in.Note,
		DeliveryUnit: in.DeliveryUnit,
		Status:       domain.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		Customer:     customer,
		Product:      product,
	}, nil
}

func total(unit domain.Money, qty int) domain.Money {
	return domain.NewMoney(unit.Mul(decimal.NewFromInt(int64(qty))))
}

// UpdateOrder copies the non-nil fields of in onto o and recomputes the total
// from the recorded unit price.
func (m *Mapper) UpdateOrder(o *domain.Order, in dto.OrderUpdateInput) {
	if in.Quantity != nil {
		o.Quantity = *in.Quantity
		o.TotalPrice = total(o.UnitPrice, o.Quantity)
	}
	if in.Note != nil {
		o.Note = *in.Note
	}
	if in.DeliveryUnit != nil {
		o.DeliveryUnit = *in.DeliveryUnit
	}
	o.UpdatedAt = m.now()
}

func (m *Mapper) ToOrderResponse(o *domain.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.OrderResponse{
		ID:           o.ID,
		ShopID:       o.ShopID,
		CustomerID:   o.CustomerID,
		ProductID:    o.ProductID,
		Quantity:     o.Quantity,
		UnitPrice:    o.UnitPrice.Decimal,
		TotalPrice:   o.TotalPrice.Decimal,
		Note:         o.Note,
		DeliveryUnit: o.DeliveryUnit,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.Fullname
	}
	if o.Product != nil {
		resp.ProductName = o.Product.Name
	}
	return resp
}

// --- feedback ---

// FeedbackFromInput stamps the feedback with the current time.
func (m *Mapper) FeedbackFromInput(in dto.FeedbackInput, customer *domain.Customer, product *domain.Product) (*domain.Feedback, error) {
	if customer == nil {
		return nil, nilRef("customer")
	}
	if product == nil {
		return nil, nilRef("product")
	}
	return &domain.Feedback{
		ShopID:     product.ShopID,
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Content:    in.Content,
		CreatedAt:  m.now(),
		Customer:   customer,
		Product:    product,
	}, nil
}

func (m *Mapper) ToFeedbackResponse(f *domain.Feedback) *dto.FeedbackResponse {
	if f == nil {
		return nil
	}
	resp := &dto.FeedbackResponse{
		ID:         f.ID,
		CustomerID: f.CustomerID,
		ProductID:  f.ProductID,
		Content:    f.Content,
		CreatedAt:  f.CreatedAt,
	}
	if f.Customer != nil {
		resp.CustomerName = f.Customer.Fullname
	}
	if f.Product != nil {
		resp.ProductName = f.Product.Name
	}
	return resp
}

// --- payments ---

func (m *Mapper) newPayment(user *domain.User, amount domain.Money, desc string, method domain.PaymentMethod, dir domain.PaymentDirection) *domain.Payment {
	now := m.now()
	return &domain.Payment{
		UserID:      user.ID,
		Amount:      amount,
		Description: desc,
		Method:      method,
		Direction:   dir,
		Status:      domain.PaymentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		User:        user,
	}
}

// PaymentFromInput builds a pending manual credit for user.
func (m *Mapper) PaymentFromInput(in dto.PaymentInput, user *domain.User) (*domain.Payment, error) {
	if user == nil {
		return nil, nilRef("user")
	}
	return m.newPayment(user, money(in.Amount), in.Description, domain.PaymentMethodManual, domain.DirectionCredit), nil
}

// PaymentFromVNPay builds a pending gateway top-up identified by txnRef.
func (m *Mapper) PaymentFromVNPay(in dto.VNPayCreateInput, user *domain.User, txnRef string) (*domain.Payment, error) {
	if user == nil {
		return nil, nilRef("user")
	}
	p := m.newPayment(user, money(in.Amount), in.OrderInfo(), domain.PaymentMethodVNPay, domain.DirectionCredit)
	p.TxnRef = txnRef
	p.BankCode = in.BankCode
	return p, nil
}

// PaymentFromDeduction builds a pending balance debit for user.
func (m *Mapper) PaymentFromDeduction(in dto.BalanceDeductionInput, user *domain.User) (*domain.Payment, error) {
	if user == nil {
		return nil, nilRef("user")
	}
	return m.newPayment(user, money(in.Amount), "", domain.PaymentMethodBalance, domain.DirectionDebit), nil
}

func (m *Mapper) ToPaymentResponse(p *domain.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Amount:      p.Amount.Decimal,
		Description: p.Description,
		Method:      p.Method,
		Direction:   p.Direction,
		Status:      p.Status,
		TxnRef:      p.TxnRef,
		BankCode:    p.BankCode,
		CreatedAt:   p.CreatedAt,
	}
}

// --- image requests ---

func (m *Mapper) ImageRequestFromInput(in dto.ImageGenerationInput, product *domain.Product, user *domain.User) (*domain.ImageRequest, error) {
	if product == nil {
		return nil, nilRef("product")
	}
	if user == nil {
		return nil, nilRef("user")
	}
	now := m.now()
	return &domain.ImageRequest{
		ProductID: product.ID,
		UserID:    user.ID,
		Prompt:    in.Prompt,
		FileName:  in.FileName,
		Model:     in.Model,
		Status:    domain.ImageStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		Product:   product,
	}, nil
}

func (m *Mapper) ToImageResponse(r *domain.ImageRequest) *dto.ImageGenerationResponse {
	if r == nil {
		return nil
	}
	resp := &dto.ImageGenerationResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Prompt:    r.Prompt,
		FileName:  r.FileName,
		Model:     r.Model,
		Status:    r.Status,
		ImageURL:  r.ImageURL,
		CreatedAt: r.CreatedAt,
	}
	if r.Product != nil {
		resp.ProductName = r.Product.Name
	}
	return resp
}

// List maps every element of items with fn, skipping nil results.
func List[E any, R any](items []E, fn func(*E) *R) []*R {
	out := make([]*R, 0, len(items))
	for i := range items {
		if r := fn(&items[i]); r != nil {
			out = append(out, r)
		}
	}
	return out
}
