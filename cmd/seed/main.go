// seed genera un script SQL para poblar el catálogo: productos, materiales, recetas y tarifa por hora.
//
// Uso: go run ./cmd/seed [--products productos.csv] [--materials materiales.csv] [--latin1] [--out seed.sql]
//
// Sin CSV se escribe el catálogo de muestra. Los CSV usan el mismo encabezado que la exportación del
// panel (/api/manager/products/export y /api/manager/materials/export); --latin1 para archivos
// guardados desde hojas de cálculo en ISO-8859-1.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

func main() {
	productsPath := pflag.String("products", "", "CSV de productos (product_name,sku,category,stock_level,min_stock,unit_price,description)")
	materialsPath := pflag.String("materials", "", "CSV de materiales (material_name,category,quantity,unit,supplier,reorder_point,cost_per_unit)")
	latin1 := pflag.Bool("latin1", false, "los CSV están en ISO-8859-1")
	outPath := pflag.String("out", "", "archivo de salida (por defecto <módulo>/seed.sql)")
	hourlyRate := pflag.String("hourly-rate", "15.00", "tarifa por hora inicial")
	pflag.Parse()

	cat := sampleCatalog()
	if *productsPath != "" || *materialsPath != "" {
		cat = catalog{}
		if *productsPath != "" {
			rows, err := readCSV(*productsPath, *latin1)
			if err != nil {
				fail("leer productos", err)
			}
			if cat.products, err = parseProducts(rows); err != nil {
				fail("productos", err)
			}
		}
		if *materialsPath != "" {
			rows, err := readCSV(*materialsPath, *latin1)
			if err != nil {
				fail("leer materiales", err)
			}
			if cat.materials, err = parseMaterials(rows); err != nil {
				fail("materiales", err)
			}
		}
	}
	rate, err := parseDecimal("hourly-rate", *hourlyRate)
	if err != nil {
		fail("tarifa", err)
	}
	cat.hourlyRate = rate

	path := *outPath
	if path == "" {
		path = filepath.Join(findModuleRoot(), "seed.sql")
	}
	out, err := os.Create(path)
	if err != nil {
		fail("crear archivo", err)
	}
	defer out.Close()

	if err := writeSQL(out, cat); err != nil {
		fail("escribir SQL", err)
	}
	fmt.Printf("Generado %s: %d productos, %d materiales, %d entradas de receta\n",
		path, len(cat.products), len(cat.materials), len(cat.recipes))
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
