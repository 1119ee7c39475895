package repositories

import (
	"strings"

	"productsapi/internal/models"
)

// SortDirection is the ordering applied to the sort field.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseDirection treats anything other than "desc" (any case) as ascending.
func ParseDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// sortColumns maps the external field names to table columns.
var sortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"price":     "price",
	"quantity":  "quantity",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// IsSortable reports whether field can be used to order a page.
func IsSortable(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

// PageRequest selects one page of products. Page is zero-based.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	Direction SortDirection
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

func (p PageRequest) column() string {
	if col, ok := sortColumns[p.SortField]; ok {
		return col
	}
	return "id"
}

// Page is one slice of products plus the total row count.
type Page struct {
	Items []models.Product
	Total int64
}
