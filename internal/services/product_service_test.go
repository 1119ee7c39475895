package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"productsapi/internal/apperrors"
	"productsapi/internal/dto"
	"productsapi/internal/events"
	"productsapi/internal/models"
	"productsapi/internal/repositories"
	"productsapi/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, req repositories.PageRequest) (repositories.Page, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(repositories.Page), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.ProductEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func eventOfType(t events.EventType, id uint) interface{} {
	return mock.MatchedBy(func(e events.ProductEvent) bool {
		return e.Type == t && e.ProductID == id && e.ID != ""
	})
}

func ptr[T any](v T) *T { return &v }

func laptop() *models.Product {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return &models.Product{
		ID:        1,
		Name:      "Laptop",
		Price:     decimal.RequireFromString("999.99"),
		Quantity:  10,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	req := dto.ProductRequest{
		Name:     "Laptop",
		Price:    ptr(decimal.RequireFromString("999.99")),
		Quantity: ptr(10),
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Product)
			p.ID = 1
			p.CreatedAt = time.Now()
			p.UpdatedAt = p.CreatedAt
		}).
		Return(nil).Once()
	mockPub.On("Publish", ctx, eventOfType(events.ProductCreated, 1)).Return(nil).Once()

	resp, err := service.CreateProduct(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "Laptop", resp.Name)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("999.99")))
	assert.Equal(t, 10, resp.Quantity)
	assert.False(t, resp.CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_CreateProduct_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("database error")).Once()

	resp, err := service.CreateProduct(ctx, dto.ProductRequest{Name: "X", Price: ptr(decimal.Zero), Quantity: ptr(0)})
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "database error")
	mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_PublishFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockPub.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	resp, err := service.CreateProduct(ctx, dto.ProductRequest{Name: "X", Price: ptr(decimal.Zero), Quantity: ptr(0)})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	req := repositories.PageRequest{Page: 1, Size: 2, SortField: "id", Direction: repositories.Asc}
	mockRepo.On("FindAll", ctx, req).Return(repositories.Page{
		Items: []models.Product{*laptop(), {ID: 2, Name: "Mouse", Price: decimal.NewFromInt(25), Quantity: 50}},
		Total: 5,
	}, nil).Once()

	page, err := service.ListProducts(ctx, req)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.NumberOfElements)
	assert.False(t, page.First)
	assert.False(t, page.Last)
	assert.False(t, page.Empty)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProducts_Empty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	req := repositories.PageRequest{Page: 0, Size: 20, SortField: "id", Direction: repositories.Asc}
	mockRepo.On("FindAll", ctx, req).Return(repositories.Page{Items: []models.Product{}}, nil).Once()

	page, err := service.ListProducts(ctx, req)
	require.NoError(t, err)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
	assert.True(t, page.Empty)
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Test successful retrieval
	mockRepo.On("FindByID", ctx, uint(1)).Return(laptop(), nil).Once()
	resp, err := service.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", resp.Name)

	// Test product not found
	mockRepo.On("FindByID", ctx, uint(99)).Return(nil, repositories.ErrNotFound).Once()
	resp, err = service.GetProduct(ctx, 99)
	assert.Nil(t, resp)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(99), notFound.ID)
	assert.Equal(t, "Product not found with id: 99", err.Error())

	// Test unexpected repository error
	mockRepo.On("FindByID", ctx, uint(2)).Return(nil, errors.New("connection refused")).Once()
	_, err = service.GetProduct(ctx, 2)
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, errors.As(err, &notFound))
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	existing := laptop()
	req := dto.ProductRequest{Name: "Laptop Pro", Price: ptr(decimal.RequireFromString("1299.5")), Quantity: ptr(3)}

	mockRepo.On("FindByID", ctx, uint(1)).Return(existing, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && p.Name == "Laptop Pro" && p.Quantity == 3 && p.Price.Equal(decimal.RequireFromString("1299.50"))
	})).Return(nil).Once()
	mockPub.On("Publish", ctx, eventOfType(events.ProductUpdated, 1)).Return(nil).Once()

	resp, err := service.UpdateProduct(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", resp.Name)
	assert.Equal(t, existing.CreatedAt, resp.CreatedAt)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByID", ctx, uint(42)).Return(nil, repositories.ErrNotFound).Once()

	_, err := service.UpdateProduct(ctx, 42, dto.ProductRequest{Name: "X", Price: ptr(decimal.Zero), Quantity: ptr(0)})
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_PatchProduct_OnlyPrice(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByID", ctx, uint(1)).Return(laptop(), nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	patch := dto.ProductPatchRequest{Price: dto.Some(decimal.RequireFromString("899.99"))}
	resp, err := service.PatchProduct(ctx, 1, patch)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", resp.Name)
	assert.Equal(t, 10, resp.Quantity)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("899.99")))
	mockRepo.AssertExpectations(t)
}

func TestProductService_PatchProduct_EmptyPatchStillSaves(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByID", ctx, uint(1)).Return(laptop(), nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Laptop" && p.Quantity == 10
	})).Return(nil).Once()

	_, err := service.PatchProduct(ctx, 1, dto.ProductPatchRequest{})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_PatchProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByID", ctx, uint(7)).Return(nil, repositories.ErrNotFound).Once()

	_, err := service.PatchProduct(ctx, 7, dto.ProductPatchRequest{Name: dto.Some("X")})
	assert.EqualError(t, err, "Product not found with id: 7")
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	// Test successful deletion
	mockRepo.On("ExistsByID", ctx, uint(1)).Return(true, nil).Once()
	mockRepo.On("DeleteByID", ctx, uint(1)).Return(nil).Once()
	mockPub.On("Publish", ctx, eventOfType(events.ProductDeleted, 1)).Return(nil).Once()
	require.NoError(t, service.DeleteProduct(ctx, 1))

	// Test deletion of a missing product performs no delete
	mockRepo.On("ExistsByID", ctx, uint(99)).Return(false, nil).Once()
	err := service.DeleteProduct(ctx, 99)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertNotCalled(t, "DeleteByID", ctx, uint(99))

	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}
