package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"productsapi/internal/apperrors"
	"productsapi/internal/dto"
	"productsapi/internal/events"
	"productsapi/internal/mapper"
	"productsapi/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher events.Publisher
}

// NewProductService creates a new ProductService. A nil publisher disables
// change notifications.
func NewProductService(repo repositories.ProductRepository, publisher events.Publisher) *ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateProduct inserts a new product. The request is assumed to be validated.
func (s *ProductService) CreateProduct(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	product := mapper.ToModel(req)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := mapper.ToResponse(product)
	s.publish(ctx, events.ProductCreated, product.ID, resp)
	return resp, nil
}

// ListProducts returns one page of products.
func (s *ProductService) ListProducts(ctx context.Context, req repositories.PageRequest) (*dto.PageResponse, error) {
	page, err := s.repo.FindAll(ctx, req)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((page.Total + int64(req.Size) - 1) / int64(req.Size))
	}
	content := mapper.ToResponses(page.Items)

	return &dto.PageResponse{
		Content:          content,
		PageNumber:       req.Page,
		PageSize:         req.Size,
		TotalElements:    page.Total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page+1 >= totalPages,
		Empty:            len(content) == 0,
	}, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(id, err)
	}
	return mapper.ToResponse(product), nil
}

// UpdateProduct replaces name, price and quantity of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(id, err)
	}

	mapper.ApplyRequest(req, product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, translate(id, err)
	}

	resp := mapper.ToResponse(product)
	s.publish(ctx, events.ProductUpdated, id, resp)
	return resp, nil
}

// PatchProduct applies only the fields present in the patch. An empty patch
// still refreshes UpdatedAt.
func (s *ProductService) PatchProduct(ctx context.Context, id uint, req dto.ProductPatchRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(id, err)
	}

	mapper.ApplyPatch(req, product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, translate(id, err)
	}

	resp := mapper.ToResponse(product)
	s.publish(ctx, events.ProductUpdated, id, resp)
	return resp, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound(id)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return translate(id, err)
	}
	s.publish(ctx, events.ProductDeleted, id, nil)
	return nil
}

// translate turns a missing row into the domain not-found error and wraps
// everything else.
func translate(id uint, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(id)
	}
	return fmt.Errorf("product %d: %w", id, err)
}

// publish never fails the caller; the row is already committed.
func (s *ProductService) publish(ctx context.Context, t events.EventType, id uint, resp *dto.ProductResponse) {
	if err := s.publisher.Publish(ctx, events.NewProductEvent(t, id, resp)); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %d: %v", t, id, err)
	}
}
