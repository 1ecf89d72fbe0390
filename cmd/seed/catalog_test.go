package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestWriteSQL_Muestra(t *testing.T) {
	cat := sampleCatalog()
	cat.hourlyRate = d("15.00")
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, cat))

	sql := buf.String()
	assert.True(t, strings.HasPrefix(sql, "-- Catálogo inicial"))
	assert.Contains(t, sql, "INSERT INTO products")
	assert.Contains(t, sql, "INSERT INTO bom_entries")
	assert.Contains(t, sql, "('hourly_rate', '15')")
	assert.Equal(t, len(cat.recipes), strings.Count(sql, "  ('")-len(cat.products)-len(cat.materials))
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}

func TestWriteSQL_RecetaConMaterialDesconocido(t *testing.T) {
	cat := catalog{
		products: []product{{name: "Vela"}},
		recipes:  []recipe{{"Vela", "Cera", d("1")}},
	}
	err := writeSQL(&bytes.Buffer{}, cat)
	assert.ErrorContains(t, err, "Cera")
}

func TestEscapeSQL(t *testing.T) {
	assert.Equal(t, "O''Brien", escapeSQL("O'Brien"))
}

func TestParseProducts(t *testing.T) {
	rows := [][]string{
		{"product_name", "sku", "category", "stock_level", "min_stock", "unit_price"},
		{"Vela Lavanda", "V-1", "Velas", "4", "2", "18.5"},
	}
	list, err := parseProducts(rows)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].stock)
	assert.True(t, list[0].price.Equal(d("18.5")))

	_, err = parseProducts([][]string{{"product_name", "stock_level"}, {"Vela", "-3"}})
	assert.ErrorContains(t, err, "fila 2")

	_, err = parseProducts([][]string{{"sku"}})
	assert.ErrorContains(t, err, "product_name")
}

func TestReadCSV_Latin1(t *testing.T) {
	enc, err := charmap.ISO8859_1.NewEncoder().String("material_name,quantity\nJabón base,3\n")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "materiales.csv")
	require.NoError(t, os.WriteFile(path, []byte(enc), 0o600))

	rows, err := readCSV(path, true)
	require.NoError(t, err)
	list, err := parseMaterials(rows)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jabón base", list[0].name)
	assert.True(t, list[0].quantity.Equal(d("3")))
}
