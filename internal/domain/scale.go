package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimales que admite cada columna NUMERIC del esquema.
const (
	ScaleMoney    int32 = 2 // precios, totales, montos
	ScaleQuantity int32 = 4 // cantidades y costos de material, costo de producción
	ScaleHours    int32 = 2
)

// CheckScale rechaza v si tiene más de places decimales; el almacenamiento lo redondearía.
func CheckScale(field string, v decimal.Decimal, places int32) error {
	if !v.Equal(v.Truncate(places)) {
		return NewValidationError(field, fmt.Sprintf("admite como máximo %d decimales", places))
	}
	return nil
}
