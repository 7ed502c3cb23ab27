package models

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Product is a catalog entry. VariablePrice means the price is asked for at
// order time (e.g. fish sold by weight) instead of read from Price.
type Product struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"uniqueIndex;not null" json:"name"`
	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID    uint    `gorm:"index;not null" json:"categoryId"`
	VariablePrice bool    `gorm:"default:false" json:"variablePrice"`
}
