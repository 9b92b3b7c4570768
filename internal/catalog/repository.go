package catalog

import (
	"context"
	"strings"

	"github.com/shopease/shopease-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryAll is the wildcard category selection: no category constraint.
const CategoryAll = "All"

// Repository loads catalog rows. The catalog is read-only after seeding.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the products table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&models.Product{})
}

// Seed upserts the fixed product list. Idempotent so restarts against a
// persistent database do not duplicate rows.
func (r *Repository) Seed(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&products).Error
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the full catalog in id order.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search returns products matching both predicates: a case-insensitive
// substring match of term against name or category, and an exact category
// match unless the selection is the "All" wildcard. Empty inputs match
// everything, so Search("", CategoryAll) is the full catalog.
func (r *Repository) Search(ctx context.Context, term, category string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if term = strings.TrimSpace(term); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}
	if category = strings.TrimSpace(category); category != "" && !strings.EqualFold(category, CategoryAll) {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Categories returns the distinct category labels in the catalog.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
