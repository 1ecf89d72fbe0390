package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los errores tipados de abajo hacen match con estos sentinels vía errors.Is.
var (
	ErrValidation            = errors.New("entrada inválida")
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInsufficientMaterials = errors.New("materiales insuficientes")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrDuplicateRecipeEntry  = errors.New("el material ya está en la receta del producto")
	ErrNoRecipeDefined       = errors.New("el producto no tiene receta (BOM) definida")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrStoreFailure          = errors.New("falla del almacenamiento")
)

// ValidationError campo faltante o con valor fuera de rango. Se rechaza antes de cualquier escritura.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError referencia a un producto, material u orden inexistente.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError construye un NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Shortfall detalle por material de una verificación de factibilidad.
// Deficit es cero cuando el material alcanza.
type Shortfall struct {
	MaterialID   string
	MaterialName string
	Unit         string
	Required     decimal.Decimal
	Available    decimal.Decimal
	Deficit      decimal.Decimal
}

// InsufficientMaterialsError la producción no es factible; lleva la lista completa de faltantes.
type InsufficientMaterialsError struct {
	ProductID  string
	Shortfalls []Shortfall
}

func (e *InsufficientMaterialsError) Error() string {
	var parts []string
	for _, s := range e.Shortfalls {
		if s.Deficit.IsPositive() {
			parts = append(parts, fmt.Sprintf("%s (requerido %s, disponible %s)",
				s.MaterialName, s.Required.String(), s.Available.String()))
		}
	}
	return fmt.Sprintf("materiales insuficientes para producto %s: %s", e.ProductID, strings.Join(parts, ", "))
}

func (e *InsufficientMaterialsError) Is(target error) bool { return target == ErrInsufficientMaterials }

// InsufficientStockError una línea del pedido pide más unidades de las que hay en stock.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (solicitado %d, disponible %d)",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// DuplicateRecipeEntryError ya existe una entrada (producto, material) en la receta.
type DuplicateRecipeEntryError struct {
	ProductID  string
	MaterialID string
}

func (e *DuplicateRecipeEntryError) Error() string {
	return fmt.Sprintf("el material %s ya está en la receta del producto %s", e.MaterialID, e.ProductID)
}

func (e *DuplicateRecipeEntryError) Is(target error) bool { return target == ErrDuplicateRecipeEntry }

// NoRecipeDefinedError se intentó producir un producto sin entradas de BOM.
type NoRecipeDefinedError struct {
	ProductID string
}

func (e *NoRecipeDefinedError) Error() string {
	return fmt.Sprintf("el producto %s no tiene receta (BOM) definida", e.ProductID)
}

func (e *NoRecipeDefinedError) Is(target error) bool { return target == ErrNoRecipeDefined }

// StoreFailureError el almacenamiento falló a mitad de operación. La transacción se revierte completa
// y el llamador puede reintentar (revalidando).
type StoreFailureError struct {
	Op  string
	Err error
}

func (e *StoreFailureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreFailureError) Unwrap() error { return e.Err }

func (e *StoreFailureError) Is(target error) bool { return target == ErrStoreFailure }

// NewStoreFailure envuelve un error de infraestructura. Si ya es StoreFailure se devuelve tal cual.
func NewStoreFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreFailure) {
		return err
	}
	return &StoreFailureError{Op: op, Err: err}
}

// IsRetryable indica si el error es de infraestructura. Los rechazos de negocio nunca lo son.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}
