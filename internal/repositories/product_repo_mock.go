package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"productsapi/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return NewMockProductRepositoryWithClock(time.Now)
}

// NewMockProductRepositoryWithClock lets tests control the timestamps.
func NewMockProductRepositoryWithClock(now func() time.Time) *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		now:      now,
	}
}

// Create adds a new product and assigns its ID.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ts := r.now()
	product.ID = r.nextID
	product.CreatedAt = ts
	product.UpdatedAt = ts
	r.products[product.ID] = *product
	return nil
}

// FindByID returns a product by its ID.
func (r *MockProductRepository) FindByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// FindAll returns one page of products.
func (r *MockProductRepository) FindAll(_ context.Context, req PageRequest) (Page, error) {
	r.mu.RLock()
	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	r.mu.RUnlock()

	less := lessBy(req.SortField)
	sort.Slice(all, func(i, j int) bool {
		c := less(all[i], all[j])
		if c == 0 {
			return all[i].ID < all[j].ID
		}
		if req.Direction == Desc {
			return c > 0
		}
		return c < 0
	})

	page := Page{Items: []models.Product{}, Total: int64(len(all))}
	start := req.Offset()
	if start < 0 || start >= len(all) {
		return page, nil
	}
	end := min(start+req.Size, len(all))
	page.Items = append(page.Items, all[start:end]...)
	return page, nil
}

// ExistsByID reports whether the product is stored.
func (r *MockProductRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok, nil
}

// Update modifies an existing product and refreshes UpdatedAt.
func (r *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = r.now()
	r.products[product.ID] = *product
	return nil
}

// DeleteByID removes a product by its ID.
func (r *MockProductRepository) DeleteByID(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// lessBy returns a three-way comparator for the external sort field.
func lessBy(field string) func(a, b models.Product) int {
	switch field {
	case "name":
		return func(a, b models.Product) int { return strings.Compare(a.Name, b.Name) }
	case "price":
		return func(a, b models.Product) int { return a.Price.Cmp(b.Price) }
	case "quantity":
		return func(a, b models.Product) int { return a.Quantity - b.Quantity }
	case "createdAt":
		return func(a, b models.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "updatedAt":
		return func(a, b models.Product) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		return func(a, b models.Product) int { return int(a.ID) - int(b.ID) }
	}
}
