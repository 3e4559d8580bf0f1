package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/internal/inventory"
	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	brands := `
CREATE TABLE IF NOT EXISTS brands (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
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
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_amount INTEGER NOT NULL,
  created_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  brand_name TEXT NOT NULL,
  product_name TEXT NOT NULL,
  unit_price INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(brands).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderLines).Error)
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

func newBrand(t *testing.T, db *gorm.DB, name string) *models.Brand {
	t.Helper()

	brand := &models.Brand{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(brand).Error)
	return brand
}

func newProduct(t *testing.T, db *gorm.DB, brand *models.Brand, name string, price, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:      uuid.New(),
		BrandID: brand.ID,
		Name:    name,
		Price:   price,
		Stock:   stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newOrderService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db), testTxRunner{db: db}, inventory.NewGuard(), NewCatalogSource(), nil)
	require.NoError(t, err)
	return svc
}

func stockOf(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var stock int
	require.NoError(t, db.Model(&models.Product{}).Select("stock").Where("id = ?", id).Take(&stock).Error)
	return stock
}

func orderCount(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestPlaceOrderSingleLine(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	product := newProduct(t, db, brand, "widget", 5000, 10)
	svc := newOrderService(t, db)
	userID := uuid.New()

	view, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: userID,
		Lines:  []LineRequest{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, view)

	assert.Equal(t, 15000, view.TotalAmount)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, brand.Name, view.Lines[0].BrandName)
	assert.Equal(t, "widget", view.Lines[0].ProductName)
	assert.Equal(t, 5000, view.Lines[0].UnitPrice)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, 7, stockOf(t, db, product.ID))
}

func TestPlaceOrderMultiLineTotal(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	first := newProduct(t, db, brand, "widget", 2000, 10)
	second := newProduct(t, db, brand, "gadget", 1000, 10)
	svc := newOrderService(t, db)

	view, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: uuid.New(),
		Lines: []LineRequest{
			{ProductID: first.ID, Quantity: 3},
			{ProductID: second.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 11000, view.TotalAmount)
	assert.Equal(t, 7, stockOf(t, db, first.ID))
	assert.Equal(t, 5, stockOf(t, db, second.ID))
}

func TestPlaceOrderLastUnitThenSoldOut(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	product := newProduct(t, db, brand, "widget", 5000, 1)
	svc := newOrderService(t, db)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: uuid.New(),
		Lines:  []LineRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, db, product.ID))

	secondUser := uuid.New()
	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: secondUser,
		Lines:  []LineRequest{{ProductID: product.ID, Quantity: 1}},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())
	assert.Equal(t, 0, stockOf(t, db, product.ID))
	assert.Zero(t, orderCount(t, db, secondUser))
}

func TestPlaceOrderRollsBackWholeOrderOnShortLine(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	plentiful := newProduct(t, db, brand, "widget", 2000, 10)
	scarce := newProduct(t, db, brand, "gadget", 1000, 2)
	svc := newOrderService(t, db)
	userID := uuid.New()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: userID,
		Lines: []LineRequest{
			{ProductID: plentiful.ID, Quantity: 3},
			{ProductID: scarce.ID, Quantity: 5},
		},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())

	// first line's reservation must not survive the rollback
	assert.Equal(t, 10, stockOf(t, db, plentiful.ID))
	assert.Equal(t, 2, stockOf(t, db, scarce.ID))
	assert.Zero(t, orderCount(t, db, userID))
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	product := newProduct(t, db, brand, "widget", 2000, 10)
	svc := newOrderService(t, db)
	userID := uuid.New()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: userID,
		Lines: []LineRequest{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	assert.Equal(t, 10, stockOf(t, db, product.ID))
	assert.Zero(t, orderCount(t, db, userID))
}

func TestPlaceOrderDeletedProductIsNotOrderable(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	product := newProduct(t, db, brand, "widget", 2000, 10)
	deletedAt := time.Now().UTC()
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("deleted_at", deletedAt).Error)
	svc := newOrderService(t, db)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: uuid.New(),
		Lines:  []LineRequest{{ProductID: product.ID, Quantity: 1}},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	assert.Equal(t, 10, stockOf(t, db, product.ID))
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrderService(t, db)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{UserID: uuid.Nil})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{UserID: uuid.New()})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: uuid.New(),
		Lines:  []LineRequest{{ProductID: uuid.New(), Quantity: 0}},
	})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestOrderSnapshotSurvivesCatalogChanges(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	product := newProduct(t, db, brand, "widget", 5000, 10)
	svc := newOrderService(t, db)
	userID := uuid.New()

	view, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: userID,
		Lines:  []LineRequest{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// rename, reprice and delete the catalog rows after placement
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]any{"name": "renamed", "price": 9999, "deleted_at": time.Now().UTC()}).Error)
	require.NoError(t, db.Model(&models.Brand{}).Where("id = ?", brand.ID).
		Update("deleted_at", time.Now().UTC()).Error)

	got, err := svc.GetOrder(context.Background(), view.ID, userID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "widget", got.Lines[0].ProductName)
	assert.Equal(t, brand.Name, got.Lines[0].BrandName)
	assert.Equal(t, 5000, got.Lines[0].UnitPrice)
	assert.Equal(t, 10000, got.TotalAmount)
}

func TestGetOrderOwnership(t *testing.T) {
	db := setupOrdersTestDB(t)
	brand := newBrand(t, db, "acme-"+uuid.NewString())
	product := newProduct(t, db, brand, "widget", 5000, 10)
	svc := newOrderService(t, db)
	owner := uuid.New()

	view, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: owner,
		Lines:  []LineRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), view.ID, uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())

	_, err = svc.GetOrder(context.Background(), uuid.New(), owner)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
