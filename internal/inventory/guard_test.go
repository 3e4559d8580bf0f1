package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

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
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:      uuid.New(),
		BrandID: uuid.New(),
		Name:    "test product",
		Price:   5000,
		Stock:   stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func currentStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var stock int
	require.NoError(t, db.Model(&models.Product{}).Select("stock").Where("id = ?", id).Take(&stock).Error)
	return stock
}

func TestReserveDecrementsStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	product := seedProduct(t, db, 10)
	guard := NewGuard()

	remaining, err := guard.Reserve(context.Background(), db, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, remaining)
	assert.Equal(t, 7, currentStock(t, db, product.ID))
}

func TestReserveAllowsDrainingToZero(t *testing.T) {
	db := setupInventoryTestDB(t)
	product := seedProduct(t, db, 1)
	guard := NewGuard()

	remaining, err := guard.Reserve(context.Background(), db, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = guard.Reserve(context.Background(), db, product.ID, 1)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())
	assert.Equal(t, 0, currentStock(t, db, product.ID))
}

func TestReserveInsufficientStockLeavesRowUntouched(t *testing.T) {
	db := setupInventoryTestDB(t)
	product := seedProduct(t, db, 2)
	guard := NewGuard()

	_, err := guard.Reserve(context.Background(), db, product.ID, 5)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())

	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, details["requested"])
	assert.Equal(t, 2, details["available"])

	assert.Equal(t, 2, currentStock(t, db, product.ID))
}

func TestReserveMissingProduct(t *testing.T) {
	db := setupInventoryTestDB(t)
	guard := NewGuard()

	_, err := guard.Reserve(context.Background(), db, uuid.New(), 1)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestReserveDeletedProductReadsAsMissing(t *testing.T) {
	db := setupInventoryTestDB(t)
	product := seedProduct(t, db, 10)
	deletedAt := time.Now().UTC()
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("deleted_at", deletedAt).Error)
	guard := NewGuard()

	_, err := guard.Reserve(context.Background(), db, product.ID, 1)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	assert.Equal(t, 10, currentStock(t, db, product.ID))
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	db := setupInventoryTestDB(t)
	product := seedProduct(t, db, 10)
	guard := NewGuard()

	for _, qty := range []int{0, -1} {
		_, err := guard.Reserve(context.Background(), db, product.ID, qty)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
	assert.Equal(t, 10, currentStock(t, db, product.ID))
}

func TestReserveUnderContention(t *testing.T) {
	db := setupInventoryTestDB(t)
	// sqlite allows one writer at a time; funnel every goroutine
	// through a single connection so none of them hit SQLITE_BUSY
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	product := seedProduct(t, db, 3)
	guard := NewGuard()

	const buyers = 8
	results := make(chan error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := guard.Reserve(context.Background(), db, product.ID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		if err == nil {
			won++
			continue
		}
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		require.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())
		lost++
	}
	assert.Equal(t, 3, won)
	assert.Equal(t, buyers-3, lost)
	assert.Equal(t, 0, currentStock(t, db, product.ID))
}

func TestReleaseReturnsStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	product := seedProduct(t, db, 5)
	guard := NewGuard()

	require.NoError(t, guard.Release(context.Background(), db, product.ID, 3))
	assert.Equal(t, 8, currentStock(t, db, product.ID))

	// non-positive quantities are a no-op
	require.NoError(t, guard.Release(context.Background(), db, product.ID, 0))
	assert.Equal(t, 8, currentStock(t, db, product.ID))
}
