package repositories

import (
	"context"
	"errors"
	"fmt"

	"productsapi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product. The store assigns the ID and timestamps.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindAll returns one page of products ordered by the requested field, with
// id as a tiebreaker so pages stay stable.
func (r *GORMProductRepository) FindAll(ctx context.Context, req PageRequest) (Page, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("failed to count products: %w", err)
	}

	col := req.column()
	q := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: req.Direction == Desc})
	if col != "id" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	products := make([]models.Product, 0, req.Size)
	if err := q.Offset(req.Offset()).Limit(req.Size).Find(&products).Error; err != nil {
		return Page{}, fmt.Errorf("failed to list products: %w", err)
	}
	return Page{Items: products, Total: total}, nil
}

// ExistsByID reports whether a product with the given ID exists.
func (r *GORMProductRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return count > 0, nil
}

// Update writes the mutable columns of an existing product and reloads it so
// the caller sees the refreshed updated_at.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(product).
		Select("name", "price", "quantity", "updated_at").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := r.db.WithContext(ctx).First(product, product.ID).Error; err != nil {
		return fmt.Errorf("failed to reload product %d: %w", product.ID, err)
	}
	return nil
}

// DeleteByID permanently removes a product.
func (r *GORMProductRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
