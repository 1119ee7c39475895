package repositories

import (
	"context"
	"errors"

	"productsapi/internal/models"
)

// ErrNotFound is returned when the requested product row does not exist.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindAll(ctx context.Context, req PageRequest) (Page, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, product *models.Product) error
	DeleteByID(ctx context.Context, id uint) error
}
