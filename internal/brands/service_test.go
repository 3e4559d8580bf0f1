package brands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/logger"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

func setupBrandsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	brands := `
CREATE TABLE IF NOT EXISTS brands (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  image_url TEXT,
  deleted_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  brand_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price INTEGER NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  deleted_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(brands).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

func newBrandService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db), testTxRunner{db: db}, logger.New(logger.Options{}))
	require.NoError(t, err)
	return svc
}

func TestRegisterBrand(t *testing.T) {
	db := setupBrandsTestDB(t)
	svc := newBrandService(t, db)
	name := "brand-" + uuid.NewString()

	view, err := svc.Register(context.Background(), RegisterInput{Name: "  " + name + "  "})
	require.NoError(t, err)
	assert.Equal(t, name, view.Name)
	assert.NotEqual(t, uuid.Nil, view.ID)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "   "})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestRegisterBrandNameConflict(t *testing.T) {
	db := setupBrandsTestDB(t)
	svc := newBrandService(t, db)
	name := "brand-" + uuid.NewString()

	_, err := svc.Register(context.Background(), RegisterInput{Name: name})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Name: name})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestUpdateBrand(t *testing.T) {
	db := setupBrandsTestDB(t)
	svc := newBrandService(t, db)

	view, err := svc.Register(context.Background(), RegisterInput{Name: "brand-" + uuid.NewString()})
	require.NoError(t, err)

	taken, err := svc.Register(context.Background(), RegisterInput{Name: "brand-" + uuid.NewString()})
	require.NoError(t, err)

	renamed := "brand-" + uuid.NewString()
	updated, err := svc.Update(context.Background(), view.ID, UpdateInput{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, renamed, updated.Name)

	_, err = svc.Update(context.Background(), view.ID, UpdateInput{Name: &taken.Name})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestDeleteBrandCascadesToProducts(t *testing.T) {
	db := setupBrandsTestDB(t)
	svc := newBrandService(t, db)

	view, err := svc.Register(context.Background(), RegisterInput{Name: "brand-" + uuid.NewString()})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		product := &models.Product{ID: uuid.New(), BrandID: view.ID, Name: "widget", Price: 100, Stock: 1}
		require.NoError(t, db.Create(product).Error)
	}
	other := &models.Brand{ID: uuid.New(), Name: "brand-" + uuid.NewString()}
	require.NoError(t, db.Create(other).Error)
	untouched := &models.Product{ID: uuid.New(), BrandID: other.ID, Name: "gadget", Price: 100, Stock: 1}
	require.NoError(t, db.Create(untouched).Error)

	require.NoError(t, svc.Delete(context.Background(), view.ID))

	_, err = svc.Get(context.Background(), view.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	var gone int64
	require.NoError(t, db.Model(&models.Product{}).
		Where("brand_id = ? AND deleted_at IS NOT NULL", view.ID).Count(&gone).Error)
	assert.EqualValues(t, 3, gone)

	var kept models.Product
	require.NoError(t, db.Where("id = ?", untouched.ID).First(&kept).Error)
	assert.Nil(t, kept.DeletedAt)

	// second delete reads as missing
	err = svc.Delete(context.Background(), view.ID)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListBrandsSkipsDeleted(t *testing.T) {
	db := setupBrandsTestDB(t)
	repo := NewRepository(db)
	svc := newBrandService(t, db)

	base := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	var deleted uuid.UUID
	for i := 0; i < 3; i++ {
		brand := &models.Brand{
			ID:        uuid.New(),
			Name:      "brand-" + uuid.NewString(),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(brand).Error)
		if i == 1 {
			deleted = brand.ID
		}
	}
	require.NoError(t, svc.Delete(context.Background(), deleted))

	list, err := repo.List(context.Background(), pagination.Params{Limit: 50})
	require.NoError(t, err)
	for _, b := range list.Brands {
		assert.NotEqual(t, deleted, b.ID)
	}
}
