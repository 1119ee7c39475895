package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product row in the store.
type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(19,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	CreatedAt time.Time       `json:"createdAt" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time       `json:"updatedAt" gorm:"not null;autoUpdateTime"`
}

// TableName pins the table name regardless of naming strategy.
func (Product) TableName() string { return "products" }
