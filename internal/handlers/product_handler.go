package handlers

import (
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"productsapi/internal/apperrors"
	"productsapi/internal/dto"
	"productsapi/internal/repositories"
	"productsapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	defaultSort     = "id,asc"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service     *services.ProductService
	validate    *validator.Validate
	maxPageSize atomic.Int64
}

// NewProductHandler creates a new ProductHandler. Requested page sizes above
// maxPageSize are clamped.
func NewProductHandler(service *services.ProductService, maxPageSize int) *ProductHandler {
	h := &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
	h.SetMaxPageSize(maxPageSize)
	return h
}

// SetMaxPageSize changes the page size cap; safe to call while serving.
func (h *ProductHandler) SetMaxPageSize(n int) {
	if n < 1 {
		n = defaultPageSize
	}
	h.maxPageSize.Store(int64(n))
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id", h.HandlePatchProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	created, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleListProducts returns one page of products.
// Query: page (default 0), size (default 20), sort "field,direction" (default id,asc).
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	pageReq, err := h.parsePageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListProducts(c.UserContext(), pageReq)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleUpdateProduct fully replaces a product. All fields are required.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// HandlePatchProduct applies only the supplied fields.
func (h *ProductHandler) HandlePatchProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req dto.ProductPatchRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	updated, err := h.service.PatchProduct(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product and answers 204 with no body.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func productID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.InvalidField("id", "Product id must be a positive integer")
	}
	return uint(id), nil
}

func (h *ProductHandler) parsePageRequest(c *fiber.Ctx) (repositories.PageRequest, error) {
	req := repositories.PageRequest{Page: 0, Size: min(defaultPageSize, int(h.maxPageSize.Load()))}
	details := map[string]string{}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			details["page"] = "Page must be a non-negative integer"
		} else {
			req.Page = page
		}
	}

	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			details["size"] = "Size must be a positive integer"
		} else {
			req.Size = min(size, int(h.maxPageSize.Load()))
		}
	}

	// The last row of the page must stay addressable as an int offset.
	if _, bad := details["page"]; !bad && req.Page > math.MaxInt/req.Size-1 {
		details["page"] = "Page is out of range"
	}

	// Extra comma-separated segments after the direction are ignored.
	parts := strings.Split(c.Query("sort", defaultSort), ",")
	field := strings.TrimSpace(parts[0])
	if !repositories.IsSortable(field) {
		details["sort"] = "Unknown sort field '" + field + "'"
	}
	req.SortField = field
	if len(parts) > 1 {
		req.Direction = repositories.ParseDirection(parts[1])
	} else {
		req.Direction = repositories.Asc
	}

	if len(details) > 0 {
		return repositories.PageRequest{}, apperrors.Validation(details)
	}
	return req, nil
}
