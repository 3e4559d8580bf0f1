package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

// Service defines catalog operations for products.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*ProductView, error)
	Get(ctx context.Context, productID uuid.UUID) (*ProductView, error)
	GetIncludingDeleted(ctx context.Context, productID uuid.UUID) (*ProductView, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID, params pagination.Params) (*ProductList, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateInput) (*ProductView, error)
	SetStock(ctx context.Context, productID uuid.UUID, stock int) error
	Delete(ctx context.Context, productID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a product service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*ProductView, error) {
	if input.BrandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	live, err := s.repo.BrandIsLive(ctx, input.BrandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check brand")
	}
	if !live {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
	}

	product := &models.Product{
		BrandID:     input.BrandID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}
	if _, err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	view := toProductView(product)
	return &view, nil
}

func (s *service) Get(ctx context.Context, productID uuid.UUID) (*ProductView, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	view := toProductView(product)
	return &view, nil
}

// GetIncludingDeleted resolves a product regardless of delete state, for
// historical lookups against placed orders.
func (s *service) GetIncludingDeleted(ctx context.Context, productID uuid.UUID) (*ProductView, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByIDIncludingDeleted(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	view := toProductView(product)
	return &view, nil
}

func (s *service) ListByBrand(ctx context.Context, brandID uuid.UUID, params pagination.Params) (*ProductList, error) {
	if brandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	list, err := s.repo.ListByBrand(ctx, brandID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateInput) (*ProductView, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		updates["name"] = name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if len(updates) == 0 {
		return s.Get(ctx, productID)
	}

	if err := s.repo.Update(ctx, productID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.Get(ctx, productID)
}

// SetStock replaces the absolute stock level, for administrative corrections.
// Order placement never calls this; it goes through the inventory guard.
func (s *service) SetStock(ctx context.Context, productID uuid.UUID, stock int) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if err := s.repo.SetStock(ctx, productID, stock); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set stock")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.SoftDelete(ctx, productID, time.Now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}
