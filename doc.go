// Package main Products API
//
// REST API for managing products with CRUD operations. Supports creating,
// reading, updating (full and partial) and deleting products with fields id,
// name, price and quantity.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Contact: Products API Support
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package main

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:generate swagger generate spec --scan-models -o docs/swagger.json

//go:embed docs/swagger.json
var openAPIDoc string

func init() {
	// gofiber/swagger serves whatever is registered under the default instance.
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: swag.Name,
		SwaggerTemplate:  openAPIDoc,
	})
}
