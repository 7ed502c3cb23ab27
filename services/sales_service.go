// services/sales_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mariscos-pos/ledger"
	"mariscos-pos/models"
	"mariscos-pos/utils"
)

var (
	ErrEmptyOrder           = errors.New("order has no lines")
	ErrInsufficientPayment  = errors.New("amount tendered is less than the total")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAmount        = errors.New("invalid amount")
)

type SalesService struct {
	db *gorm.DB
}

func NewSalesService(db *gorm.DB) *SalesService {
	return &SalesService{db: db}
}

// PaymentResult is what the payment screen needs back after a commit.
type PaymentResult struct {
	SaleID uint    `json:"saleId"`
	Folio  string  `json:"folio"`
	Total  float64 `json:"total"`
	Change float64 `json:"change"`
}

// Commit persists one Sale plus a SaleLine per ticket row in a single
// transaction. It validates the payment, clamps the discount into
// [0, running total] and computes the change, but never touches the ledger:
// freeing the table is the caller's job, after Commit reports success.
func (s *SalesService) Commit(order ledger.Snapshot, method string, discount, tendered float64) (PaymentResult, error) {
	if len(order.Lines) == 0 {
		return PaymentResult{}, ErrEmptyOrder
	}
	if method != models.PaymentCash && method != models.PaymentCard {
		return PaymentResult{}, ErrInvalidPaymentMethod
	}
	if !utils.ValidAmount(discount) || !utils.ValidAmount(tendered) {
		return PaymentResult{}, ErrInvalidAmount
	}

	// ValidAmount already refused negative discounts; only the upper
	// bound needs clamping.
	if discount > order.Total {
		discount = order.Total
	}
	total := order.Total - discount

	if method == models.PaymentCash && tendered < total {
		return PaymentResult{}, ErrInsufficientPayment
	}

	now := time.Now()
	sale := models.Sale{
		Folio:          newFolio(now),
		TableLabel:     order.Label,
		Total:          total,
		PaymentMethod:  method,
		Discount:       discount,
		AmountTendered: tendered,
		SoldAt:         now,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return PaymentResult{}, err
	}

	for _, li := range order.Lines {
		line := models.SaleLine{
			SaleID:      sale.ID,
			ProductID:   li.ProductID,
			ProductName: li.Name,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
		if err := tx.Create(&line).Error; err != nil {
			tx.Rollback()
			return PaymentResult{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return PaymentResult{}, err
	}

	change := 0.0
	if method == models.PaymentCash {
		change = tendered - total
	}

	return PaymentResult{
		SaleID: sale.ID,
		Folio:  sale.Folio,
		Total:  total,
		Change: change,
	}, nil
}

// GetSale loads a committed sale with its lines, for receipts and history.
func (s *SalesService) GetSale(id uint) (models.Sale, error) {
	var sale models.Sale
	err := s.db.Preload("Lines").First(&sale, id).Error
	return sale, err
}

// ListSales returns history newest first, capped at limit (0 means all).
func (s *SalesService) ListSales(limit int) ([]models.Sale, error) {
	var sales []models.Sale
	q := s.db.Preload("Lines").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sales).Error
	return sales, err
}

func newFolio(now time.Time) string {
	suffix := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return "VTA-" + now.Format("20060102") + "-" + suffix
}
