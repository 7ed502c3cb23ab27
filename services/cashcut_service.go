// services/cashcut_service.go
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"mariscos-pos/models"
	"mariscos-pos/utils"
)

var ErrNothingToClose = errors.New("no uncut sales to close today")

// CashCutService partitions committed sales into the current (uncut) bucket
// and closed historical buckets keyed by a date label. Closing a cut is one
// way: a labeled sale never returns to the current bucket.
type CashCutService struct {
	db *gorm.DB
}

func NewCashCutService(db *gorm.DB) *CashCutService {
	return &CashCutService{db: db}
}

type CutSummary struct {
	Count         int64   `gorm:"column:count" json:"count"`
	Total         float64 `gorm:"column:total" json:"total"`
	CashTotal     float64 `gorm:"column:cash_total" json:"cashTotal"`
	CardTotal     float64 `gorm:"column:card_total" json:"cardTotal"`
	DiscountTotal float64 `gorm:"column:discount_total" json:"discountTotal"`
}

type ProductBreakdownRow struct {
	ProductName   string  `gorm:"column:product_name" json:"productName"`
	TotalQuantity int     `gorm:"column:total_quantity" json:"totalQuantity"`
	TotalAmount   float64 `gorm:"column:total_amount" json:"totalAmount"`
}

const summarySelect = `COUNT(*) AS count,
COALESCE(SUM(total), 0) AS total,
COALESCE(SUM(CASE WHEN payment_method = 'Cash' THEN total ELSE 0 END), 0) AS cash_total,
COALESCE(SUM(CASE WHEN payment_method = 'Card' THEN total ELSE 0 END), 0) AS card_total,
COALESCE(SUM(discount), 0) AS discount_total`

// SummarizeCurrent totals today's sales that no cut has claimed yet.
func (s *CashCutService) SummarizeCurrent(now time.Time) (CutSummary, error) {
	var summary CutSummary
	err := s.db.Model(&models.Sale{}).
		Where("cut_label IS NULL AND sold_at >= ? AND sold_at < ?",
			utils.BeginningOfDay(now), utils.EndOfDay(now)).
		Select(summarySelect).
		Scan(&summary).Error
	return summary, err
}

// SummarizeCut totals one closed historical bucket.
func (s *CashCutService) SummarizeCut(label string) (CutSummary, error) {
	var summary CutSummary
	err := s.db.Model(&models.Sale{}).
		Where("cut_label = ?", label).
		Select(summarySelect).
		Scan(&summary).Error
	return summary, err
}

// SummarizeAll totals the full unfiltered sale history. The current summary
// plus every cut summary must add up to this.
func (s *CashCutService) SummarizeAll() (CutSummary, error) {
	var summary CutSummary
	err := s.db.Model(&models.Sale{}).
		Select(summarySelect).
		Scan(&summary).Error
	return summary, err
}

// CloseCut labels every uncut sale of now's calendar day with the day label,
// atomically, and returns the label. With no uncut sale today it fails with
// ErrNothingToClose and changes nothing; running it twice in a day is
// therefore a refused no-op the second time.
func (s *CashCutService) CloseCut(now time.Time) (string, error) {
	label := utils.DayLabel(now)
	res := s.db.Model(&models.Sale{}).
		Where("cut_label IS NULL AND sold_at >= ? AND sold_at < ?",
			utils.BeginningOfDay(now), utils.EndOfDay(now)).
		Update("cut_label", label)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", ErrNothingToClose
	}
	return label, nil
}

// ListCuts returns the historical cut labels, newest first.
func (s *CashCutService) ListCuts() ([]string, error) {
	var labels []string
	err := s.db.Model(&models.Sale{}).
		Where("cut_label IS NOT NULL").
		Distinct("cut_label").
		Order("cut_label DESC").
		Pluck("cut_label", &labels).Error
	return labels, err
}

// ProductBreakdownCurrent groups today's uncut sale lines by product name,
// most sold first. Names come from the commit-time snapshot, so deleted
// products still report.
func (s *CashCutService) ProductBreakdownCurrent(now time.Time) ([]ProductBreakdownRow, error) {
	return s.productBreakdown(
		"sales.cut_label IS NULL AND sales.sold_at >= ? AND sales.sold_at < ?",
		utils.BeginningOfDay(now), utils.EndOfDay(now))
}

// ProductBreakdownCut is the same grouping over one closed bucket.
func (s *CashCutService) ProductBreakdownCut(label string) ([]ProductBreakdownRow, error) {
	return s.productBreakdown("sales.cut_label = ?", label)
}

func (s *CashCutService) productBreakdown(cond string, args ...interface{}) ([]ProductBreakdownRow, error) {
	var rows []ProductBreakdownRow
	err := s.db.Table("sale_lines").
		Select("sale_lines.product_name, SUM(sale_lines.quantity) AS total_quantity, SUM(sale_lines.quantity * sale_lines.unit_price) AS total_amount").
		Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Where(cond, args...).
		Group("sale_lines.product_name").
		Order("total_quantity DESC").
		Scan(&rows).Error
	return rows, err
}
