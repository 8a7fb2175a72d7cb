package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shop-assistant-api/internal/application"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shop-assistant-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, userID, shopID int64, in dto.ProductInput) (*domain.Product, error)
	Get(ctx context.Context, userID, productID int64) (*domain.Product, error)
	ListByShop(ctx context.Context, userID, shopID int64) ([]domain.Product, error)
	Update(ctx context.Context, userID, productID int64, in dto.ProductUpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, userID, productID int64) error
}

type productStore interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID int64) (*domain.Product, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product, setStock bool) error
	Delete(ctx context.Context, productID int64) error
}

type shopStore interface {
	Get(ctx context.Context, shopID int64) (*domain.Shop, error)
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type service struct {
	products productStore
	shops    shopStore
	images   imageStore
	mapper   *mapper.Mapper
	logger   *slog.Logger
}

type ServiceDeps struct {
	ProductRepo productStore
	ShopRepo    shopStore
	ImageStore  imageStore
	Mapper      *mapper.Mapper
	Logger      *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		products: deps.ProductRepo,
		shops:    deps.ShopRepo,
		images:   deps.ImageStore,
		mapper:   deps.Mapper,
		logger:   logger,
	}
}

func imageKey(productID int64) string {
	return fmt.Sprintf("products/%d/%s", productID, id.New())
}

func (s *service) Create(ctx context.Context, userID, shopID int64, in dto.ProductInput) (*domain.Product, error) {
	shop, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.mapper.ProductFromInput(in, shop)
	if err != nil {
		return nil, err
	}
	// The id is reserved first so the image key can carry it.
	if p.ID, err = s.products.NextID(ctx); err != nil {
		return nil, err
	}
	if p.Image != "" {
		if p.ImageURL, err = s.images.UploadBase64(ctx, imageKey(p.ID), p.Image); err != nil {
			return nil, err
		}
	}
	if err := s.products.Create(ctx, p); err != nil {
		s.removeImage(ctx, p.ImageURL)
		return nil, err
	}
	return p, nil
}

func (s *service) owned(ctx context.Context, userID, productID int64) (*domain.Product, error) {
	p, err := application.Lookup(ctx, s.products.Get, productID, "Product")
	if err != nil {
		return nil, err
	}
	shop, err := application.OwnedShop(ctx, s.shops.Get, p.ShopID, userID)
	if err != nil {
		return nil, domain.NotFound("Product")
	}
	p.Shop = shop
	return p, nil
}

func (s *service) Get(ctx context.Context, userID, productID int64) (*domain.Product, error) {
	return s.owned(ctx, userID, productID)
}

func (s *service) ListByShop(ctx context.Context, userID, shopID int64) ([]domain.Product, error) {
	shop, err := application.OwnedShop(ctx, s.shops.Get, shopID, userID)
	if err != nil {
		return nil, err
	}
	ps, err := s.products.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].Shop = shop
	}
	return ps, nil
}

// Update applies a partial update. A non-empty image replaces the stored one;
// an explicitly empty image removes it.
func (s *service) Update(ctx context.Context, userID, productID int64, in dto.ProductUpdateInput) (*domain.Product, error) {
	p, err := s.owned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	oldURL := p.ImageURL
	s.mapper.UpdateProduct(p, in)
	if in.Image != nil {
		p.ImageURL = ""
		if p.Image != "" {
			if p.ImageURL, err = s.images.UploadBase64(ctx, imageKey(p.ID), p.Image); err != nil {
				return nil, err
			}
		}
	}
	if err := s.products.Update(ctx, p, in.Stock != nil); err != nil {
		if p.ImageURL != oldURL {
			s.removeImage(ctx, p.ImageURL)
		}
		return nil, err
	}
	if p.ImageURL != oldURL {
		s.removeImage(ctx, oldURL)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, userID, productID int64) error {
	p, err := s.owned(ctx, userID, productID)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.removeImage(ctx, p.ImageURL)
	return nil
}

// removeImage deletes a stored object. Failures leave an orphan and are only logged.
func (s *service) removeImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key, ok := s.images.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Warn("could not delete product image", "key", key, "err", err)
	}
}
