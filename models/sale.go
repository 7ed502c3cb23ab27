package models

import (
	"time"
)

const (
	PaymentCash = "Cash"
	PaymentCard = "Card"
)

// Sale is the immutable record of one paid ticket. The only field that ever
// changes after commit is CutLabel, set once when the day is closed.
type Sale struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Folio          string    `gorm:"uniqueIndex;not null" json:"folio"`
	TableLabel     string    `gorm:"not null" json:"tableLabel"`
	Total          float64   `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod  string    `gorm:"not null" json:"paymentMethod"`
	Discount       float64   `gorm:"type:decimal(10,2);default:0.0" json:"discount"`
	AmountTendered float64   `gorm:"type:decimal(10,2);default:0.0" json:"amountTendered"`
	CutLabel       *string   `gorm:"index" json:"cutLabel"`
	SoldAt         time.Time `gorm:"index;not null" json:"soldAt"`

	Lines []SaleLine `gorm:"foreignKey:SaleID" json:"lines,omitempty"`
}

// SaleLine snapshots name and price at commit time, so later catalog edits or
// deletions never rewrite history.
type SaleLine struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SaleID      uint    `gorm:"index;not null" json:"saleId"`
	ProductID   uint    `gorm:"index;not null" json:"productId"`
	ProductName string  `gorm:"not null" json:"productName"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
}
