package catalog

import (
	"github.com/shopease/shopease-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func pricePtr(value string) *decimal.Decimal {
	p := price(value)
	return &p
}

// SeedProducts is the fixed demo catalog, created once at boot.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:            1,
			Name:          "Premium Wireless Headphones",
			Price:         price("199.99"),
			OriginalPrice: pricePtr("249.99"),
			Image:         "/placeholder.svg",
			Rating:        4.8,
			Reviews:       324,
			Description:   "High-quality wireless headphones with noise cancellation and premium sound quality.",
			Category:      "Electronics",
		},
		{
			ID:          2,
			Name:        "Smart Fitness Watch",
			Price:       price("299.99"),
			Image:       "/placeholder.svg",
			Rating:      4.6,
			Reviews:     156,
			Description: "Advanced fitness tracking with heart rate monitoring and GPS capabilities.",
			Category:    "Wearables",
		},
		{
			ID:            3,
			Name:          "Organic Cotton T-Shirt",
			Price:         price("29.99"),
			OriginalPrice: pricePtr("39.99"),
			Image:         "/placeholder.svg",
			Rating:        4.7,
			Reviews:       89,
			Description:   "Comfortable organic cotton t-shirt, sustainably made and super soft.",
			Category:      "Clothing",
		},
		{
			ID:          4,
			Name:        "Professional Camera Lens",
			Price:       price("549.99"),
			Image:       "/placeholder.svg",
			Rating:      4.9,
			Reviews:     67,
			Description: "High-performance camera lens for professional photography.",
			Category:    "Photography",
		},
		{
			ID:            5,
			Name:          "Ergonomic Office Chair",
			Price:         price("399.99"),
			OriginalPrice: pricePtr("499.99"),
			Image:         "/placeholder.svg",
			Rating:        4.5,
			Reviews:       234,
			Description:   "Comfortable ergonomic office chair with lumbar support and adjustable height.",
			Category:      "Furniture",
		},
		{
			ID:          6,
			Name:        "Smart Home Speaker",
			Price:       price("149.99"),
			Image:       "/placeholder.svg",
			Rating:      4.4,
			Reviews:     445,
			Description: "Voice-controlled smart speaker with premium audio and home automation.",
			Category:    "Smart Home",
		},
	}
}
