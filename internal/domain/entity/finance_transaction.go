package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento financiero.
const (
	FinanceTypeIncome  = "income"
	FinanceTypeExpense = "expense"
)

// Medios de pago aceptados.
var PaymentMethods = []string{"cash", "credit_card", "debit_card", "bank_transfer", "check"}

// IsValidFinanceType indica si t es income o expense.
func IsValidFinanceType(t string) bool {
	return t == FinanceTypeIncome || t == FinanceTypeExpense
}

// IsValidPaymentMethod indica si m es uno de PaymentMethods.
func IsValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// FinanceTransaction ingreso o gasto del libro de caja. Amount siempre es positivo; Type da el signo.
type FinanceTransaction struct {
	ID            string
	Date          time.Time
	Type          string
	Category      string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
	CreatedAt     time.Time
}
