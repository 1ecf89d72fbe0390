// Package finance resume el libro de caja: totales, por categoría y por mes.
package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

// CategoryTotal suma de un tipo y categoría.
type CategoryTotal struct {
	Type     string
	Category string
	Amount   decimal.Decimal
}

// MonthTotal ingresos y gastos de un mes (YYYY-MM).
type MonthTotal struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net ingresos menos gastos del mes.
func (m MonthTotal) Net() decimal.Decimal { return m.Income.Sub(m.Expense) }

// Summary resumen de un conjunto de movimientos.
type Summary struct {
	Count      int
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Net        decimal.Decimal
	AvgAmount  decimal.Decimal
	ByCategory []CategoryTotal // tipo, luego monto descendente
	Monthly    []MonthTotal    // mes ascendente
}

// Summarize agrega los movimientos. Sin movimientos todo es cero.
func Summarize(txs []*entity.FinanceTransaction) Summary {
	s := Summary{
		Count:      len(txs),
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Net:        decimal.Zero,
		AvgAmount:  decimal.Zero,
		ByCategory: make([]CategoryTotal, 0),
		Monthly:    make([]MonthTotal, 0),
	}
	if len(txs) == 0 {
		return s
	}

	type catKey struct{ typ, category string }
	byCat := make(map[catKey]decimal.Decimal)
	byMonth := make(map[string]*MonthTotal)
	all := decimal.Zero
	for _, tx := range txs {
		all = all.Add(tx.Amount)
		month := tx.Date.Format("2006-01")
		mt, ok := byMonth[month]
		if !ok {
			mt = &MonthTotal{Month: month, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[month] = mt
		}
		switch tx.Type {
		case entity.FinanceTypeIncome:
			s.Income = s.Income.Add(tx.Amount)
			mt.Income = mt.Income.Add(tx.Amount)
		case entity.FinanceTypeExpense:
			s.Expense = s.Expense.Add(tx.Amount)
			mt.Expense = mt.Expense.Add(tx.Amount)
		default:
			continue
		}
		k := catKey{tx.Type, tx.Category}
		byCat[k] = byCat[k].Add(tx.Amount)
	}
	s.Net = s.Income.Sub(s.Expense)
	s.AvgAmount = all.DivRound(decimal.NewFromInt(int64(len(txs))), 2)

	for k, amount := range byCat {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Type: k.typ, Category: k.category, Amount: amount})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})
	for _, mt := range byMonth {
		s.Monthly = append(s.Monthly, *mt)
	}
	sort.Slice(s.Monthly, func(i, j int) bool { return s.Monthly[i].Month < s.Monthly[j].Month })
	return s
}
