package accesstoken

import (
	"context"
	"errors"
	"testing"

	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Create(ctx context.Context, tok *domain.AccessToken) error {
	return m.Called(ctx, tok).Error(0)
}
func (m *mockTokenStore) Get(ctx context.Context, tokenID int64) (*domain.AccessToken, error) {
	args := m.Called(ctx, tokenID)
	if t, _ := args.Get(0).(*domain.AccessToken); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenStore) ListByShop(ctx context.Context, shopID int64) ([]domain.AccessToken, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]domain.AccessToken), args.Error(1)
}
func (m *mockTokenStore) SetStatus(ctx context.Context, tokenID int64, status domain.TokenStatus) error {
	return m.Called(ctx, tokenID, status).Error(0)
}

type mockShopStore struct{ mock.Mock }

func (m *mockShopStore) Get(ctx context.Context, shopID int64) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	if s, _ := args.Get(0).(*domain.Shop); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func newService(ts *mockTokenStore, ss *mockShopStore, us *mockUserStore) Service {
	return NewService(ServiceDeps{AccessTokenRepo: ts, ShopRepo: ss, UserRepo: us, Mapper: mapper.New()})
}

func ownedShop(ss *mockShopStore) {
	ss.On("Get", mock.Anything, int64(3)).Return(&domain.Shop{ID: 3, OwnerID: 1, Name: "Tea"}, nil)
}

// --- tests ---

func TestCreate_MissingShopIsValidation(t *testing.T) {
	ts, ss, us := &mockTokenStore{}, &mockShopStore{}, &mockUserStore{}
	_, err := newService(ts, ss, us).Create(context.Background(), 1,
		dto.AccessTokenInput{Token: "abc", Method: domain.MethodZalo})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "shopId", ve.Field)
	ss.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCreate_Active(t *testing.T) {
	ts, ss, us := &mockTokenStore{}, &mockShopStore{}, &mockUserStore{}
	ownedShop(ss)
	us.On("Get", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	ts.On("Create", mock.Anything, mock.AnythingOfType("*domain.AccessToken")).Return(nil)

	shopID := int64(3)
	tok, err := newService(ts, ss, us).Create(context.Background(), 1,
		dto.AccessTokenInput{Token: "abc", Method: domain.MethodTelegram, ShopID: &shopID})

	require.NoError(t, err)
	assert.Equal(t, domain.TokenStatusActive, tok.Status)
	assert.Equal(t, int64(3), tok.ShopID)
}

func TestCreate_ForeignShop(t *testing.T) {
	ss := &mockShopStore{}
	ss.On("Get", mock.Anything, int64(3)).Return(&domain.Shop{ID: 3, OwnerID: 2}, nil)

	shopID := int64(3)
	_, err := newService(&mockTokenStore{}, ss, &mockUserStore{}).Create(context.Background(), 1,
		dto.AccessTokenInput{Token: "abc", Method: domain.MethodZalo, ShopID: &shopID})

	assert.EqualError(t, err, "Shop not found")
}

func TestRevoke(t *testing.T) {
	ts, ss := &mockTokenStore{}, &mockShopStore{}
	ownedShop(ss)
	ts.On("Get", mock.Anything, int64(8)).Return(&domain.AccessToken{ID: 8, ShopID: 3, Status: domain.TokenStatusActive}, nil)
	ts.On("SetStatus", mock.Anything, int64(8), domain.TokenStatusRevoked).Return(nil)

	tok, err := newService(ts, ss, &mockUserStore{}).Revoke(context.Background(), 1, 8)

	require.NoError(t, err)
	assert.Equal(t, domain.TokenStatusRevoked, tok.Status)
	ts.AssertExpectations(t)
}

func TestRevoke_Twice(t *testing.T) {
	ts, ss := &mockTokenStore{}, &mockShopStore{}
	ownedShop(ss)
	ts.On("Get", mock.Anything, int64(8)).Return(&domain.AccessToken{ID: 8, ShopID: 3, Status: domain.TokenStatusRevoked}, nil)

	_, err := newService(ts, ss, &mockUserStore{}).Revoke(context.Background(), 1, 8)

	var sc *domain.StateConflictError
	assert.True(t, errors.As(err, &sc))
	ts.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByShop_AttachesShop(t *testing.T) {
	ts, ss := &mockTokenStore{}, &mockShopStore{}
	ownedShop(ss)
	ts.On("ListByShop", mock.Anything, int64(3)).Return([]domain.AccessToken{{ID: 1}, {ID: 2}}, nil)

	toks, err := newService(ts, ss, &mockUserStore{}).ListByShop(context.Background(), 1, 3)

	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "Tea", toks[1].Shop.Name)
}
