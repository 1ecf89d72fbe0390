package inventory

import "github.com/shopspring/decimal"

// SuggestReorder cantidad sugerida de reposición: lleva el nivel al doble del umbral.
// faltante = max(umbral - actual, 0); sugerido = max(faltante + umbral, umbral).
// Nunca devuelve menos que el umbral.
func SuggestReorder(currentLevel, threshold decimal.Decimal) decimal.Decimal {
	shortfall := decimal.Max(threshold.Sub(currentLevel), decimal.Zero)
	return decimal.Max(shortfall.Add(threshold), threshold)
}

// SuggestReorderUnits variante entera para productos terminados (stock_level / min_stock).
func SuggestReorderUnits(stockLevel, minStock int64) int64 {
	return SuggestReorder(decimal.NewFromInt(stockLevel), decimal.NewFromInt(minStock)).IntPart()
}
