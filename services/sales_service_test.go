package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mariscos-pos/ledger"
	"mariscos-pos/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.SaleLine{},
	))
	return db
}

// testOrder builds the worked example: 2x beer at 45.00 plus one
// variable-price item at 300.00, running total 390.00.
func testOrder() ledger.Snapshot {
	return ledger.Snapshot{
		TableKey: "7",
		Label:    "Mesa 7",
		Lines: []ledger.LineItem{
			{ID: 1, ProductID: 10, Name: "Corona 1/2", UnitPrice: 45.00, Quantity: 2},
			{ID: 2, ProductID: 20, Name: "Mojarra frita", UnitPrice: 300.00, Quantity: 1},
		},
		Total: 390.00,
	}
}

func TestCommitCashWithDiscountAndChange(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	result, err := svc.Commit(testOrder(), models.PaymentCash, 40.00, 400.00)
	require.NoError(t, err)

	assert.Equal(t, 350.00, result.Total)
	assert.Equal(t, 50.00, result.Change)
	assert.Contains(t, result.Folio, "VTA-")

	sale, err := svc.GetSale(result.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "Mesa 7", sale.TableLabel)
	assert.Equal(t, models.PaymentCash, sale.PaymentMethod)
	assert.Equal(t, 40.00, sale.Discount)
	assert.Equal(t, 400.00, sale.AmountTendered)
	assert.Nil(t, sale.CutLabel)

	require.Len(t, sale.Lines, 2)
	assert.Equal(t, "Corona 1/2", sale.Lines[0].ProductName)
	assert.Equal(t, 2, sale.Lines[0].Quantity)
	assert.Equal(t, uint(20), sale.Lines[1].ProductID)
	assert.Equal(t, 300.00, sale.Lines[1].UnitPrice)
}

func TestCommitCardIgnoresTendered(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	result, err := svc.Commit(testOrder(), models.PaymentCard, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 390.00, result.Total)
	assert.Equal(t, 0.00, result.Change)
}

func TestCommitEmptyOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	_, err := svc.Commit(ledger.Snapshot{TableKey: "1", Label: "Mesa 1"}, models.PaymentCash, 0, 100)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assertNoRows(t, db)
}

func TestCommitInsufficientCash(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	_, err := svc.Commit(testOrder(), models.PaymentCash, 0, 389.99)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assertNoRows(t, db)
}

func TestCommitInvalidMethod(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	_, err := svc.Commit(testOrder(), "Cheque", 0, 500)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	assertNoRows(t, db)
}

func TestCommitClampsDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	result, err := svc.Commit(testOrder(), models.PaymentCash, 1000.00, 0)
	require.NoError(t, err, "a discount above the total clamps to the total, so zero is due")
	assert.Equal(t, 0.00, result.Total)

	sale, err := svc.GetSale(result.SaleID)
	require.NoError(t, err)
	assert.Equal(t, 390.00, sale.Discount)
}

func TestCommitRejectsNegativeDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	_, err := svc.Commit(testOrder(), models.PaymentCash, -10.00, 400)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assertNoRows(t, db)
}

func TestCommitIsAtomic(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	// Force the line insert to fail after the sale header was written.
	require.NoError(t, db.Migrator().DropTable(&models.SaleLine{}))

	_, err := svc.Commit(testOrder(), models.PaymentCash, 0, 400)
	require.Error(t, err)

	var sales int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&sales).Error)
	assert.Zero(t, sales, "a failed commit must leave no partial sale row")
}

func TestListSalesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewSalesService(db)

	first, err := svc.Commit(testOrder(), models.PaymentCash, 0, 400)
	require.NoError(t, err)
	second, err := svc.Commit(testOrder(), models.PaymentCard, 0, 0)
	require.NoError(t, err)

	sales, err := svc.ListSales(0)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, second.SaleID, sales[0].ID)
	assert.Equal(t, first.SaleID, sales[1].ID)

	limited, err := svc.ListSales(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func assertNoRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	var sales, lines int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&sales).Error)
	require.NoError(t, db.Model(&models.SaleLine{}).Count(&lines).Error)
	assert.Zero(t, sales)
	assert.Zero(t, lines)
}

// Guard against folio collisions when two sales commit in the same instant.
func TestFolioUniquePerSale(t *testing.T) {
	now := time.Now()
	a := newFolio(now)
	b := newFolio(now)
	assert.NotEqual(t, a, b)
}
