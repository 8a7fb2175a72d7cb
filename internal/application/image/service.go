// Package image generates product images through an external provider and
// stores them next to the product's other media.
package image

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Service interface {
	Generate(ctx context.Context, userID int64, in dto.ImageGenerationInput) (*domain.ImageRequest, error)
	ListByProduct(ctx context.Context, userID, productID int64) ([]domain.ImageRequest, error)
}

type requestStore interface {
	Create(ctx context.Context, req *domain.ImageRequest) error
	Complete(ctx context.Context, requestID int64, status domain.ImageStatus, imageURL string) error
	ListByProduct(ctx context.Context, productID int64) ([]domain.ImageRequest, error)
}

type productStore interface {
	Get(ctx context.Context, productID int64) (*domain.Product, error)
}

type shopStore interface {
	Get(ctx context.Context, shopID int64) (*domain.Shop, error)
}

type userStore interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
}

type generator interface {
	Generate(ctx context.Context, prompt, model string) ([]byte, error)
}

type objectStore interface {
	UploadBytes(ctx context.Context, key string, data []byte) (string, error)
}

type service struct {
	requests  requestStore
	products  productStore
	shops     shopStore
	users     userStore
	generator generator
	objects   objectStore
	mapper    *mapper.Mapper
	logger    *slog.Logger
}

type ServiceDeps struct {
	ImageRequestRepo requestStore
	ProductRepo      productStore
	ShopRepo         shopStore
	UserRepo         userStore
	Generator        generator
	ObjectStore      objectStore
	Mapper           *mapper.Mapper
	Logger           *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		requests:  deps.ImageRequestRepo,
		products:  deps.ProductRepo,
		shops:     deps.ShopRepo,
		users:     deps.UserRepo,
		generator: deps.Generator,
		objects:   deps.ObjectStore,
		mapper:    deps.Mapper,
		logger:    logger,
	}
}

func (s *service) ownedProduct(ctx context.Context, userID, productID int64) (*domain.Product, error) {
	p, err := application.Lookup(ctx, s.products.Get, productID, "Product")
	if err != nil {
		return nil, err
	}
	if _, err := application.OwnedShop(ctx, s.shops.Get, p.ShopID, userID); err != nil {
		return nil, domain.NotFound("Product")
	}
	return p, nil
}

// Generate records the request, calls the provider and stores the result.
// The request ends COMPLETED with an image URL or FAILED.
func (s *service) Generate(ctx context.Context, userID int64, in dto.ImageGenerationInput) (*domain.ImageRequest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product, err := s.ownedProduct(ctx, userID, *in.ProductID)
	if err != nil {
		return nil, err
	}
	user, err := application.Lookup(ctx, s.users.Get, userID, "User")
	if err != nil {
		return nil, err
	}
	req, err := s.mapper.ImageRequestFromInput(in, product, user)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	data, err := s.generator.Generate(ctx, req.Prompt, req.Model)
	if err != nil {
		s.fail(ctx, req)
		return nil, err
	}
	url, err := s.objects.UploadBytes(ctx, objectKey(product.ID, req.ID, req.FileName), data)
	if err != nil {
		s.fail(ctx, req)
		return nil, err
	}
	if err := s.requests.Complete(ctx, req.ID, domain.ImageStatusCompleted, url); err != nil {
		return nil, err
	}
	req.Status = domain.ImageStatusCompleted
	req.ImageURL = url
	return req, nil
}

func (s *service) fail(ctx context.Context, req *domain.ImageRequest) {
	req.Status = domain.ImageStatusFailed
	if err := s.requests.Complete(ctx, req.ID, domain.ImageStatusFailed, ""); err != nil {
		s.logger.Warn("could not mark image request failed", "request_id", req.ID, "err", err)
	}
}

// objectKey names the stored image after its request, so repeated generations
// for one product never share a key. A client file name, reduced to a safe
// base name, is kept as a suffix.
func objectKey(productID, requestID int64, fileName string) string {
	name := unsafeNameChars.ReplaceAllString(path.Base(strings.ReplaceAll(fileName, "\\", "/")), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return fmt.Sprintf("images/%d/%d.png", productID, requestID)
	}
	if path.Ext(name) == "" {
		name += ".png"
	}
	return fmt.Sprintf("images/%d/%d-%s", productID, requestID, name)
}

func (s *service) ListByProduct(ctx context.Context, userID, productID int64) ([]domain.ImageRequest, error) {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		reqs[i].Product = product
	}
	return reqs, nil
}
