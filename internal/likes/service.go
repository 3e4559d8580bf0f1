package likes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/minjaepark/commerce-backend/pkg/db"
	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/logger"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

const countCacheTTL = 5 * time.Minute

// Service defines like operations. Like and Unlike are idempotent: repeating
// either leaves the same state and reports success.
type Service interface {
	Like(ctx context.Context, userID, productID uuid.UUID) error
	Unlike(ctx context.Context, userID, productID uuid.UUID) error
	Count(ctx context.Context, productID uuid.UUID) (int64, error)
	ListLiked(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LikedProductList, error)
}

type service struct {
	repo  Repository
	cache CountCache
	logg  *logger.Logger
}

// NewService builds a likes service. Cache may be nil; counting then always
// hits the database.
func NewService(repo Repository, cache CountCache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("likes repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

func (s *service) Like(ctx context.Context, userID, productID uuid.UUID) error {
	if err := validatePair(userID, productID); err != nil {
		return err
	}

	live, err := s.repo.ProductIsLive(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if !live {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	err = s.repo.Create(ctx, &models.ProductLike{UserID: userID, ProductID: productID})
	if err != nil {
		// a second like of the same product is not an error
		if db.IsUniqueViolation(err, "idx_product_likes_user_product") {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create like")
	}
	s.invalidateCount(ctx, productID)
	return nil
}

func (s *service) Unlike(ctx context.Context, userID, productID uuid.UUID) error {
	if err := validatePair(userID, productID); err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete like")
	}
	if removed > 0 {
		s.invalidateCount(ctx, productID)
	}
	return nil
}

func (s *service) Count(ctx context.Context, productID uuid.UUID) (int64, error) {
	if productID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, s.cache.LikeCountKey(productID.String()))
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		} else if !errors.Is(err, goredis.Nil) {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID.String()), "like count cache read failed")
		}
	}

	count, err := s.repo.CountByProduct(ctx, productID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count likes")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cache.LikeCountKey(productID.String()), strconv.FormatInt(count, 10), countCacheTTL); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID.String()), "like count cache write failed")
		}
	}
	return count, nil
}

func (s *service) ListLiked(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LikedProductList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListLikedProducts(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list liked products")
	}
	return list, nil
}

func (s *service) invalidateCount(ctx context.Context, productID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.LikeCountKey(productID.String())); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID.String()), "like count cache invalidation failed")
	}
}

func validatePair(userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return nil
}
