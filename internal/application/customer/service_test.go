package customer

import (
	"context"
	"testing"

	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockCustomerStore struct{ mock.Mock }

func (m *mockCustomerStore) Create(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCustomerStore) Get(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, _ := args.Get(0).(*domain.Customer); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCustomerStore) ListByShop(ctx context.Context, shopID int64) ([]domain.Customer, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *mockCustomerStore) Update(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCustomerStore) Delete(ctx context.Context, customerID int64) error {
	return m.Called(ctx, customerID).Error(0)
}

type mockShopStore struct{ mock.Mock }

func (m *mockShopStore) Get(ctx context.Context, shopID int64) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	if s, _ := args.Get(0).(*domain.Shop); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func newService(cs *mockCustomerStore, ss *mockShopStore) Service {
	return NewService(ServiceDeps{CustomerRepo: cs, ShopRepo: ss, Mapper: mapper.New()})
}

func ptr[T any](v T) *T { return &v }

// --- tests ---

func TestCreate_UnknownShop(t *testing.T) {
	ss := &mockShopStore{}
	ss.On("Get", mock.Anything, int64(4)).Return(nil, domain.ErrNotFound)

	_, err := newService(&mockCustomerStore{}, ss).Create(context.Background(), 1, dto.CustomerInput{ShopID: ptr(int64(4)), Fullname: "Lan", Address: "12 Hue", Phone: "0900", Email: "lan@x.vn"})
	assert.EqualError(t, err, "Shop not found")
}

func TestCreate_MissingShopIsValidation(t *testing.T) {
	ss := &mockShopStore{}
	_, err := newService(&mockCustomerStore{}, ss).Create(context.Background(), 1, dto.CustomerInput{})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "shopId", ve.Field)
	ss.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCreate_Success(t *testing.T) {
	cs, ss := &mockCustomerStore{}, &mockShopStore{}
	ss.On("Get", mock.Anything, int64(4)).Return(&domain.Shop{ID: 4, OwnerID: 1}, nil)
	cs.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.ShopID == 4 && c.Fullname == "Lan"
	})).Return(nil)

	c, err := newService(cs, ss).Create(context.Background(), 1, dto.CustomerInput{ShopID: ptr(int64(4)), Fullname: "Lan", Address: "12 Hue", Phone: "0900", Email: "lan@x.vn"})

	require.NoError(t, err)
	assert.Equal(t, int64(4), c.Shop.ID)
}

func TestGet_ForeignShopLooksMissing(t *testing.T) {
	cs, ss := &mockCustomerStore{}, &mockShopStore{}
	cs.On("Get", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9, ShopID: 4}, nil)
	ss.On("Get", mock.Anything, int64(4)).Return(&domain.Shop{ID: 4, OwnerID: 2}, nil)

	_, err := newService(cs, ss).Get(context.Background(), 1, 9)
	assert.EqualError(t, err, "Customer not found")
}

func TestUpdate_Partial(t *testing.T) {
	cs, ss := &mockCustomerStore{}, &mockShopStore{}
	cs.On("Get", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9, ShopID: 4, Fullname: "Lan", Phone: "1"}, nil)
	ss.On("Get", mock.Anything, int64(4)).Return(&domain.Shop{ID: 4, OwnerID: 1}, nil)
	cs.On("Update", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)

	c, err := newService(cs, ss).Update(context.Background(), 1, 9, dto.CustomerUpdateInput{Phone: ptr("0900")})

	require.NoError(t, err)
	assert.Equal(t, "Lan", c.Fullname)
	assert.Equal(t, "0900", c.Phone)
}

func TestDelete(t *testing.T) {
	cs, ss := &mockCustomerStore{}, &mockShopStore{}
	cs.On("Get", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9, ShopID: 4}, nil)
	ss.On("Get", mock.Anything, int64(4)).Return(&domain.Shop{ID: 4, OwnerID: 1}, nil)
	cs.On("Delete", mock.Anything, int64(9)).Return(nil)

	require.NoError(t, newService(cs, ss).Delete(context.Background(), 1, 9))
	cs.AssertExpectations(t)
}
