// Package dto holds the request and response shapes exchanged over HTTP.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductRequest is the body of create and full-update calls. Every field is
// required; price and quantity are pointers so a missing key is not mistaken
// for zero.
//
// swagger:model
type ProductRequest struct {
	// Product name
	//
	// required: true
	// max length: 255
	// example: Laptop
	Name string `json:"name" validate:"notblank,max=255"`

	// Unit price with two fractional digits
	//
	// required: true
	// minimum: 0
	// example: 999.99
	Price *decimal.Decimal `json:"price" validate:"required,gte=0"`

	// Units in stock
	//
	// required: true
	// minimum: 0
	// example: 10
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// ProductPatchRequest is the body of a partial update. Only keys present in
// the document are applied; null is rejected.
//
// swagger:model
type ProductPatchRequest struct {
	// Product name
	//
	// max length: 255
	// example: Laptop Pro
	Name Optional[string] `json:"name,omitzero" validate:"omitnil,notblank,max=255"`

	// Unit price with two fractional digits
	//
	// minimum: 0
	// example: 899.99
	Price Optional[decimal.Decimal] `json:"price,omitzero" validate:"omitnil,gte=0"`

	// Units in stock
	//
	// minimum: 0
	// example: 5
	Quantity Optional[int] `json:"quantity,omitzero" validate:"omitnil,gte=0"`
}

// ProductResponse is the read-only representation of a product.
//
// swagger:model
type ProductResponse struct {
	// example: 1
	ID uint `json:"id"`
	// example: Laptop
	Name string `json:"name"`
	// example: 999.99
	Price decimal.Decimal `json:"price"`
	// example: 10
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageResponse wraps one page of products plus pagination metadata.
//
// swagger:model
type PageResponse struct {
	Content []ProductResponse `json:"content"`
	// Zero-based page index
	PageNumber       int   `json:"pageNumber"`
	PageSize         int   `json:"pageSize"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// ErrorResponse is the uniform error body.
//
// swagger:model
type ErrorResponse struct {
	// HTTP status code
	//
	// example: 404
	Status int `json:"status"`
	// example: Product not found with id: 1
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	// Per-field messages for validation failures
	Details map[string]string `json:"details,omitempty"`
}
