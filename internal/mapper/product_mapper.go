// Package mapper converts between the stored product row and the transport
// shapes. All functions are pure.
package mapper

import (
	"productsapi/internal/dto"
	"productsapi/internal/models"

	"github.com/shopspring/decimal"
)

// priceScale matches the decimal(19,2) column.
const priceScale = 2

// ToModel builds a new row from a request. ID and timestamps are left for the
// store to assign.
func ToModel(req dto.ProductRequest) *models.Product {
	p := &models.Product{}
	ApplyRequest(req, p)
	return p
}

// ToResponse copies every field of the row. A nil row maps to nil.
func ToResponse(p *models.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToResponses maps a slice of rows, never returning nil.
func ToResponses(products []models.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *ToResponse(&products[i]))
	}
	return out
}

// ApplyRequest overwrites name, price and quantity on an existing row.
func ApplyRequest(req dto.ProductRequest, p *models.Product) {
	if p == nil {
		return
	}
	p.Name = req.Name
	if req.Price != nil {
		p.Price = roundPrice(*req.Price)
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
}

// ApplyPatch overwrites only the fields the patch carries.
func ApplyPatch(req dto.ProductPatchRequest, p *models.Product) {
	if p == nil {
		return
	}
	if req.Name.Present() {
		p.Name = req.Name.Value
	}
	if req.Price.Present() {
		p.Price = roundPrice(req.Price.Value)
	}
	if req.Quantity.Present() {
		p.Quantity = req.Quantity.Value
	}
}

func roundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(priceScale)
}
