// Package docs documento OpenAPI de la API. swagger.json se regenera con swag init a partir de las
// anotaciones de internal/interfaces/http.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo información de la API registrada en swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Metamorphocus API",
	Description:      "Inventario de manufactura: catálogo, recetas (BOM), producción, mano de obra, costos y pedidos de la tienda.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
