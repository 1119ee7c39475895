package handlers

import "productsapi/internal/dto"

// Route, parameter and response declarations for `swagger generate spec`.
// The types below are read by the generator only.

// swagger:route POST /api/products products createProduct
//
// Create a new product.
//
// Creates a new product with the provided name, price and quantity.
//
// responses:
//   201: productResponse
//   400: errorResponse
//   500: errorResponse

// swagger:route GET /api/products products listProducts
//
// Get all products.
//
// Retrieves a paginated list of all products with optional sorting.
//
// responses:
//   200: pageResponse
//   400: errorResponse
//   500: errorResponse

// swagger:route GET /api/products/{id} products getProduct
//
// Get product by ID.
//
// Retrieves a single product by its unique identifier.
//
// responses:
//   200: productResponse
//   400: errorResponse
//   404: errorResponse

// swagger:route PUT /api/products/{id} products updateProduct
//
// Update a product.
//
// Fully updates an existing product; all fields are required.
//
// responses:
//   200: productResponse
//   400: errorResponse
//   404: errorResponse

// swagger:route PATCH /api/products/{id} products patchProduct
//
// Partially update a product.
//
// Updates only the provided fields of an existing product.
//
// responses:
//   200: productResponse
//   400: errorResponse
//   404: errorResponse

// swagger:route DELETE /api/products/{id} products deleteProduct
//
// Delete a product.
//
// Deletes a product by its unique identifier.
//
// responses:
//   204: noContent
//   400: errorResponse
//   404: errorResponse

// swagger:parameters getProduct updateProduct patchProduct deleteProduct
type productIDParam struct {
	// Product ID
	//
	// in: path
	// required: true
	// minimum: 1
	ID uint `json:"id"`
}

// swagger:parameters listProducts
type listProductsParams struct {
	// Page number (0-indexed)
	//
	// in: query
	// minimum: 0
	// default: 0
	Page int `json:"page"`

	// Page size, capped by pagination.max_size
	//
	// in: query
	// minimum: 1
	// default: 20
	Size int `json:"size"`

	// Sort criteria, e.g. name,asc or price,desc
	//
	// in: query
	// default: id,asc
	Sort string `json:"sort"`
}

// swagger:parameters createProduct updateProduct
type productBodyParam struct {
	// in: body
	// required: true
	Body dto.ProductRequest
}

// swagger:parameters patchProduct
type productPatchBodyParam struct {
	// in: body
	// required: true
	Body dto.ProductPatchRequest
}

// A single product.
// swagger:response productResponse
type productResponseWrapper struct {
	// in: body
	Body dto.ProductResponse
}

// One page of products.
// swagger:response pageResponse
type pageResponseWrapper struct {
	// in: body
	Body dto.PageResponse
}

// Uniform error body.
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in: body
	Body dto.ErrorResponse
}

// No content.
// swagger:response noContent
type noContentResponse struct{}
