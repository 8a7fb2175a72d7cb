package image

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockRequestStore struct{ mock.Mock }

func (m *mockRequestStore) Create(ctx context.Context, req *domain.ImageRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockRequestStore) Complete(ctx context.Context, requestID int64, status domain.ImageStatus, imageURL string) error {
	return m.Called(ctx, requestID, status, imageURL).Error(0)
}
func (m *mockRequestStore) ListByProduct(ctx context.Context, productID int64) ([]domain.ImageRequest, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.ImageRequest), args.Error(1)
}

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
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

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, prompt, model string) ([]byte, error) {
	args := m.Called(ctx, prompt, model)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockObjects struct{ mock.Mock }

func (m *mockObjects) UploadBytes(ctx context.Context, key string, data []byte) (string, error) {
	args := m.Called(ctx, key, data)
	return args.String(0), args.Error(1)
}

// --- helpers ---

type fixture struct {
	requests  *mockRequestStore
	generator *mockGenerator
	objects   *mockObjects
	svc       Service
}

func newFixture() *fixture {
	f := &fixture{requests: &mockRequestStore{}, generator: &mockGenerator{}, objects: &mockObjects{}}
	products, shops, users := &mockProductStore{}, &mockShopStore{}, &mockUserStore{}
	products.On("Get", mock.Anything, int64(3)).Return(&domain.Product{ID: 3, ShopID: 4, Name: "Tea"}, nil)
	shops.On("Get", mock.Anything, int64(4)).Return(&domain.Shop{ID: 4, OwnerID: 1}, nil)
	users.On("Get", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.svc = NewService(ServiceDeps{
		ImageRequestRepo: f.requests,
		ProductRepo:      products,
		ShopRepo:         shops,
		UserRepo:         users,
		Generator:        f.generator,
		ObjectStore:      f.objects,
		Mapper:           mapper.New(),
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func input(fileName string) dto.ImageGenerationInput {
	productID := int64(3)
	return dto.ImageGenerationInput{ProductID: &productID, Prompt: "a teapot", FileName: fileName}
}

// --- Generate tests ---

func TestGenerate_MissingProductIsValidation(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Generate(context.Background(), 1, dto.ImageGenerationInput{Prompt: "a teapot"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "productId", ve.Field)
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_Completed(t *testing.T) {
	f := newFixture()
	f.requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.ImageRequest")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.ImageRequest).ID = 9 }).Return(nil)
	f.generator.On("Generate", mock.Anything, "a teapot", "").Return([]byte("png"), nil)
	f.objects.On("UploadBytes", mock.Anything, "images/3/9-teapot.png", []byte("png")).Return("https://cdn/images/3/9-teapot.png", nil)
	f.requests.On("Complete", mock.Anything, int64(9), domain.ImageStatusCompleted, "https://cdn/images/3/9-teapot.png").Return(nil)

	req, err := f.svc.Generate(context.Background(), 1, input("teapot.png"))

	require.NoError(t, err)
	assert.Equal(t, domain.ImageStatusCompleted, req.Status)
	assert.Equal(t, "https://cdn/images/3/9-teapot.png", req.ImageURL)
	f.requests.AssertExpectations(t)
}

func TestGenerate_ProviderFailure(t *testing.T) {
	f := newFixture()
	boom := errors.New("provider returned 500")
	f.requests.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.ImageRequest).ID = 9 }).Return(nil)
	f.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	f.requests.On("Complete", mock.Anything, int64(9), domain.ImageStatusFailed, "").Return(nil)

	_, err := f.svc.Generate(context.Background(), 1, input(""))

	assert.Equal(t, boom, err)
	f.requests.AssertExpectations(t)
	f.objects.AssertNotCalled(t, "UploadBytes", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_ForeignProduct(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Generate(context.Background(), 2, input(""))
	assert.EqualError(t, err, "Product not found")
}

// --- objectKey tests ---

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "images/3/9-banner.png", objectKey(3, 9, "banner"))
	assert.Equal(t, "images/3/9-shot.webp", objectKey(3, 9, "../../etc/shot.webp"))
	assert.Equal(t, "images/3/9-my_file.jpg", objectKey(3, 9, `C:\tmp\my file.jpg`))
	assert.Equal(t, "images/3/9.png", objectKey(3, 9, "  "))
}

func TestObjectKey_DistinctPerRequest(t *testing.T) {
	assert.NotEqual(t, objectKey(3, 9, "teapot.png"), objectKey(3, 10, "teapot.png"))
}

func TestListByProduct(t *testing.T) {
	f := newFixture()
	f.requests.On("ListByProduct", mock.Anything, int64(3)).Return([]domain.ImageRequest{{ID: 1}}, nil)

	out, err := f.svc.ListByProduct(context.Background(), 1, 3)

	require.NoError(t, err)
	assert.Equal(t, "Tea", out[0].Product.Name)
}
