package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
)

// Encabezados de exportación; cmd/seed acepta los mismos.
var (
	productCSVHeader  = []string{"product_name", "sku", "category", "stock_level", "min_stock", "unit_price", "description"}
	materialCSVHeader = []string{"material_name", "category", "quantity", "unit", "supplier", "reorder_point", "cost_per_unit"}
)

func productCSVRow(p dto.ProductResponse) []string {
	return []string{
		p.Name, p.SKU, p.Category,
		strconv.FormatInt(p.StockLevel, 10), strconv.FormatInt(p.MinStock, 10),
		p.UnitPrice.StringFixed(2), p.Description,
	}
}

func materialCSVRow(m dto.MaterialResponse) []string {
	return []string{
		m.Name, m.Category, m.Quantity.String(), m.Unit, m.Supplier,
		m.ReorderPoint.String(), m.CostPerUnit.String(),
	}
}

// sendCSV responde un adjunto CSV con nombre <prefix>_export_AAAAMMDD.csv.
func sendCSV(c *fiber.Ctx, prefix string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return writeError(c, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_export_%s.csv"`, prefix, time.Now().UTC().Format("20060102")))
	return c.Send(buf.Bytes())
}
