package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

type product struct {
	id, name, sku, category, description string
	stock, minStock                      int64
	price                                decimal.Decimal
}

type material struct {
	id, name, category, unit, supplier string
	quantity, reorderPoint, cost       decimal.Decimal
}

// recipe referencia producto y material por nombre; el id se resuelve al escribir.
type recipe struct {
	product, material string
	quantity          decimal.Decimal
}

type catalog struct {
	products   []product
	materials  []material
	recipes    []recipe
	hourlyRate decimal.Decimal
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleCatalog() catalog {
	return catalog{
		products: []product{
			{name: "Lavender Soy Candle", sku: "CND-LAV-01", category: "Candles", stock: 12, minStock: 5, price: d("18.00"),
				description: "Vela de soya con aceite esencial de lavanda"},
			{name: "Citrus Soy Candle", sku: "CND-CIT-01", category: "Candles", stock: 3, minStock: 5, price: d("18.00")},
			{name: "Oatmeal Honey Soap", sku: "SOP-OAT-01", category: "Soaps", stock: 20, minStock: 8, price: d("7.50"),
				description: "Jabón artesanal de avena y miel"},
			{name: "Charcoal Soap", sku: "SOP-CHR-01", category: "Soaps", stock: 0, minStock: 6, price: d("8.00")},
		},
		materials: []material{
			{name: "Soy Wax", category: "Wax", quantity: d("25"), unit: "kg", supplier: "CeraSur", reorderPoint: d("10"), cost: d("6.40")},
			{name: "Cotton Wick", category: "Wicks", quantity: d("150"), unit: "unit", supplier: "CeraSur", reorderPoint: d("50"), cost: d("0.12")},
			{name: "Glass Jar 8oz", category: "Containers", quantity: d("40"), unit: "unit", supplier: "Vidrios Andes", reorderPoint: d("30"), cost: d("1.10")},
			{name: "Lavender Essential Oil", category: "Fragrance", quantity: d("0.8"), unit: "l", supplier: "Aromas SAS", reorderPoint: d("0.5"), cost: d("42.00")},
			{name: "Citrus Essential Oil", category: "Fragrance", quantity: d("0.3"), unit: "l", supplier: "Aromas SAS", reorderPoint: d("0.5"), cost: d("38.00")},
			{name: "Soap Base", category: "Base", quantity: d("12"), unit: "kg", supplier: "Química Norte", reorderPoint: d("5"), cost: d("9.80")},
			{name: "Rolled Oats", category: "Additives", quantity: d("3"), unit: "kg", supplier: "Mercado", reorderPoint: d("1"), cost: d("2.50")},
			{name: "Activated Charcoal", category: "Additives", quantity: d("0.4"), unit: "kg", supplier: "Química Norte", reorderPoint: d("0.5"), cost: d("24.00")},
		},
		recipes: []recipe{
			{"Lavender Soy Candle", "Soy Wax", d("0.2")},
			{"Lavender Soy Candle", "Cotton Wick", d("1")},
			{"Lavender Soy Candle", "Glass Jar 8oz", d("1")},
			{"Lavender Soy Candle", "Lavender Essential Oil", d("0.015")},
			{"Citrus Soy Candle", "Soy Wax", d("0.2")},
			{"Citrus Soy Candle", "Cotton Wick", d("1")},
			{"Citrus Soy Candle", "Glass Jar 8oz", d("1")},
			{"Citrus Soy Candle", "Citrus Essential Oil", d("0.015")},
			{"Oatmeal Honey Soap", "Soap Base", d("0.11")},
			{"Oatmeal Honey Soap", "Rolled Oats", d("0.01")},
			{"Charcoal Soap", "Soap Base", d("0.11")},
			{"Charcoal Soap", "Activated Charcoal", d("0.005")},
		},
	}
}

// readCSV lee todas las filas; la primera es el encabezado.
func readCSV(path string, latin1 bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío", path)
	}
	return rows, nil
}

// columns indexa el encabezado y verifica que estén las columnas requeridas.
func columns(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, r := range required {
		if _, ok := idx[r]; !ok {
			return nil, fmt.Errorf("falta la columna %q", r)
		}
	}
	return idx, nil
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q no es un número", name, s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: no puede ser negativo", name)
	}
	return v, nil
}

func parseInt(name, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s: %q debe ser un entero >= 0", name, s)
	}
	return v, nil
}

func parseProducts(rows [][]string) ([]product, error) {
	idx, err := columns(rows[0], "product_name")
	if err != nil {
		return nil, err
	}
	out := make([]product, 0, len(rows)-1)
	for n, row := range rows[1:] {
		p := product{
			name:        field(row, idx, "product_name"),
			sku:         field(row, idx, "sku"),
			category:    field(row, idx, "category"),
			description: field(row, idx, "description"),
		}
		if p.name == "" {
			return nil, fmt.Errorf("fila %d: product_name requerido", n+2)
		}
		if p.stock, err = parseInt("stock_level", field(row, idx, "stock_level")); err != nil {
			return nil, fmt.Errorf("fila %d: %w", n+2, err)
		}
		if p.minStock, err = parseInt("min_stock", field(row, idx, "min_stock")); err != nil {
			return nil, fmt.Errorf("fila %d: %w", n+2, err)
		}
		if p.price, err = parseDecimal("unit_price", field(row, idx, "unit_price")); err != nil {
			return nil, fmt.Errorf("fila %d: %w", n+2, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseMaterials(rows [][]string) ([]material, error) {
	idx, err := columns(rows[0], "material_name")
	if err != nil {
		return nil, err
	}
	out := make([]material, 0, len(rows)-1)
	for n, row := range rows[1:] {
		m := material{
			name:     field(row, idx, "material_name"),
			category: field(row, idx, "category"),
			unit:     field(row, idx, "unit"),
			supplier: field(row, idx, "supplier"),
		}
		if m.name == "" {
			return nil, fmt.Errorf("fila %d: material_name requerido", n+2)
		}
		if m.quantity, err = parseDecimal("quantity", field(row, idx, "quantity")); err != nil {
			return nil, fmt.Errorf("fila %d: %w", n+2, err)
		}
		if m.reorderPoint, err = parseDecimal("reorder_point", field(row, idx, "reorder_point")); err != nil {
			return nil, fmt.Errorf("fila %d: %w", n+2, err)
		}
		if m.cost, err = parseDecimal("cost_per_unit", field(row, idx, "cost_per_unit")); err != nil {
			return nil, fmt.Errorf("fila %d: %w", n+2, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// writeSQL escribe los INSERT en una transacción. Las recetas se resuelven por nombre contra
// los productos y materiales del mismo script.
func writeSQL(w io.Writer, cat catalog) error {
	productIDs := make(map[string]string, len(cat.products))
	materialIDs := make(map[string]string, len(cat.materials))

	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por cmd/seed\n\nBEGIN;\n\n")

	if len(cat.products) > 0 {
		b.WriteString("INSERT INTO products (id, name, sku, category, stock_level, min_stock, unit_price, description) VALUES\n")
		for i, p := range cat.products {
			id := uuid.New().String()
			productIDs[p.name] = id
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %d, %d, %s, '%s')%s\n",
				id, escapeSQL(p.name), escapeSQL(p.sku), escapeSQL(p.category),
				p.stock, p.minStock, p.price.StringFixed(2), escapeSQL(p.description), sep(i, len(cat.products)))
		}
		b.WriteString("\n")
	}

	if len(cat.materials) > 0 {
		b.WriteString("INSERT INTO materials (id, name, category, quantity, unit, supplier, reorder_point, cost_per_unit) VALUES\n")
		for i, m := range cat.materials {
			id := uuid.New().String()
			materialIDs[m.name] = id
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s, '%s', '%s', %s, %s)%s\n",
				id, escapeSQL(m.name), escapeSQL(m.category), m.quantity.String(), escapeSQL(m.unit),
				escapeSQL(m.supplier), m.reorderPoint.String(), m.cost.String(), sep(i, len(cat.materials)))
		}
		b.WriteString("\n")
	}

	if len(cat.recipes) > 0 {
		b.WriteString("INSERT INTO bom_entries (id, product_id, material_id, quantity_needed) VALUES\n")
		for i, r := range cat.recipes {
			pid, ok := productIDs[r.product]
			if !ok {
				return fmt.Errorf("receta: producto %q no está en el catálogo", r.product)
			}
			mid, ok := materialIDs[r.material]
			if !ok {
				return fmt.Errorf("receta: material %q no está en el catálogo", r.material)
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s)%s\n",
				uuid.New().String(), pid, mid, r.quantity.String(), sep(i, len(cat.recipes)))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "INSERT INTO settings (key, value) VALUES ('%s', '%s')\n", entity.SettingHourlyRate, cat.hourlyRate.String())
	b.WriteString("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now();\n\nCOMMIT;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ";"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
