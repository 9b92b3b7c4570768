package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing. Rows are seeded once at boot and never
// mutated during a session.
type Product struct {
	ID            int64            `gorm:"column:id;primaryKey" json:"id"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(10,2)" json:"original_price,omitempty"`
	Image         string           `gorm:"column:image;not null" json:"image"`
	Rating        float64          `gorm:"column:rating;type:numeric(3,1);not null" json:"rating"`
	Reviews       int              `gorm:"column:reviews;not null;default:0" json:"reviews"`
	Description   string           `gorm:"column:description" json:"description"`
	Category      string           `gorm:"column:category;not null" json:"category"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName pins the table used by the catalog repository.
func (Product) TableName() string {
	return "products"
}
