package brands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db"
	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/logger"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines brand operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*BrandView, error)
	Get(ctx context.Context, brandID uuid.UUID) (*BrandView, error)
	List(ctx context.Context, params pagination.Params) (*BrandList, error)
	Update(ctx context.Context, brandID uuid.UUID, input UpdateInput) (*BrandView, error)
	Delete(ctx context.Context, brandID uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a brand service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brands repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*BrandView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name required")
	}

	brand := &models.Brand{
		Name:        name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if _, err := s.repo.Create(ctx, brand); err != nil {
		if db.IsUniqueViolation(err, "idx_brands_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand")
	}
	view := toBrandView(brand)
	return &view, nil
}

func (s *service) Get(ctx context.Context, brandID uuid.UUID) (*BrandView, error) {
	if brandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	brand, err := s.repo.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	view := toBrandView(brand)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*BrandList, error) {
	list, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, brandID uuid.UUID, input UpdateInput) (*BrandView, error) {
	if brandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name required")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if len(updates) == 0 {
		return s.Get(ctx, brandID)
	}

	if err := s.repo.Update(ctx, brandID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		if db.IsUniqueViolation(err, "idx_brands_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return s.Get(ctx, brandID)
}

// Delete soft-deletes the brand and all of its products in one transaction,
// so listings never show a live product under a deleted brand.
func (s *service) Delete(ctx context.Context, brandID uuid.UUID) error {
	if brandID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}

	at := time.Now().UTC()
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.SoftDelete(ctx, brandID, at); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete brand")
		}
		cascaded, err := repo.SoftDeleteProducts(ctx, brandID, at)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cascade product delete")
		}
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"brand_id":         brandID.String(),
			"products_removed": cascaded,
		}), "brand deleted")
		return nil
	})
}
