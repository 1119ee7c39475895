package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"productsapi/internal/apperrors"
	"productsapi/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// fieldMessages holds the user-facing message per "<json field>.<tag>".
var fieldMessages = map[string]string{
	"name.notblank":     "Product name is required",
	"name.max":          "Product name must not exceed 255 characters",
	"price.required":    "Price is required",
	"price.gte":         "Price must be non-negative",
	"quantity.required": "Quantity is required",
	"quantity.gte":      "Quantity must be non-negative",
}

// newValidator returns a validator that understands decimal prices,
// Optional patch fields, and reports errors under JSON field names.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	// Unset or null Optional fields become nil pointers so omitnil skips them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch o := field.Interface().(type) {
		case dto.Optional[string]:
			return o.Ptr()
		case dto.Optional[int]:
			return o.Ptr()
		case dto.Optional[decimal.Decimal]:
			return o.Ptr()
		}
		return nil
	}, dto.Optional[string]{}, dto.Optional[int]{}, dto.Optional[decimal.Decimal]{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(dto.ProductPatchRequest)
		if req.Name.Null {
			sl.ReportError(req.Name, "name", "Name", "notnull", "")
		}
		if req.Price.Null {
			sl.ReportError(req.Price, "price", "Price", "notnull", "")
		}
		if req.Quantity.Null {
			sl.ReportError(req.Quantity, "quantity", "Quantity", "notnull", "")
		}
	}, dto.ProductPatchRequest{})

	return v
}

// validateStruct runs the validator and converts failures into a
// ValidationError keyed by JSON field name.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	details := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		if _, seen := details[e.Field()]; seen {
			continue
		}
		details[e.Field()] = fieldMessage(e.Field(), e.Tag())
	}
	return apperrors.Validation(details)
}

func fieldMessage(field, tag string) string {
	if msg, ok := fieldMessages[field+"."+tag]; ok {
		return msg
	}
	if tag == "notnull" {
		return fmt.Sprintf("Field '%s' must not be null", field)
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", field, tag)
}

// parseBody decodes the JSON body into out. Decoding failures are request
// shape violations and are reported as validation errors.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperrors.InvalidField(typeErr.Field, fmt.Sprintf("Field '%s' must be a valid %s", typeErr.Field, typeErr.Type))
		}
		return apperrors.InvalidField("body", "Malformed JSON request body")
	}
	return nil
}
