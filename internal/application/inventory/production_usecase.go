package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// Estados de una corrida: Requested → Validated → Committed, o Rejected.
const (
	ProductionRequested = "requested"
	ProductionValidated = "validated"
	ProductionCommitted = "committed"
	ProductionRejected  = "rejected"
)

// ProductionUseCase ejecuta corridas de producción: consume materiales según la receta
// y suma producto terminado en una sola transacción, con bloqueo de filas (SELECT FOR UPDATE).
type ProductionUseCase struct {
	txRunner TxRunner
	repos    repository.UnitOfWork
	log      *logger.Logger
	now      func() time.Time
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(txRunner TxRunner, repos repository.UnitOfWork, log *logger.Logger) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log.With("production"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ProduceInput entrada de una corrida. ProductionDate cero = hoy.
type ProduceInput struct {
	ProductID      string
	Quantity       int64
	ProducedBy     string
	ProductionDate time.Time
	Notes          string
}

// Produce valida factibilidad y confirma la corrida:
//   - bloquea el producto y cada material de la receta (orden ascendente por ID);
//   - sin receta → NoRecipeDefinedError; faltantes → InsufficientMaterialsError (nada se consume);
//   - resta QuantityNeeded × Quantity de cada material, suma Quantity al stock del producto e
//     inserta un ProductionRecord con MaterialCost = costo unitario × Quantity.
//
// Cualquier error del almacenamiento revierte todo; no se reintenta automáticamente.
func (uc *ProductionUseCase) Produce(ctx context.Context, in ProduceInput) (*dto.ProductionResponse, error) {
	in.ProducedBy = strings.TrimSpace(in.ProducedBy)
	if err := validateProduceInput(in); err != nil {
		return nil, err
	}
	if in.ProductionDate.IsZero() {
		in.ProductionDate = uc.now().Truncate(24 * time.Hour)
	}

	ctx, span := tracer.Start(ctx, "production.produce", trace.WithAttributes(
		attribute.String("product.id", in.ProductID),
		attribute.Int64("production.quantity", in.Quantity),
	))
	defer span.End()

	uc.log.Debug().Str("product_id", in.ProductID).Int64("quantity", in.Quantity).
		Str("state", ProductionRequested).Msg("corrida solicitada")

	var out *dto.ProductionResponse
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		product, err := uow.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError("producto", in.ProductID)
		}
		lines, err := lockRecipe(ctx, uow, in.ProductID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return &domain.NoRecipeDefinedError{ProductID: in.ProductID}
		}
		feasibility := inventory.CheckFeasibility(lines, in.Quantity)
		if !feasibility.Feasible {
			return &domain.InsufficientMaterialsError{ProductID: in.ProductID, Shortfalls: feasibility.Shortfalls}
		}
		uc.log.Debug().Str("product_id", in.ProductID).Str("state", ProductionValidated).Msg("corrida validada")

		qty := decimal.NewFromInt(in.Quantity)
		for _, l := range lines {
			remaining := l.Material.Quantity.Sub(l.Entry.QuantityNeeded.Mul(qty))
			if err := uow.Materials.UpdateQuantity(ctx, l.Material.ID, remaining); err != nil {
				return err
			}
		}
		newStock := product.StockLevel + in.Quantity
		if err := uow.Products.UpdateStockLevel(ctx, product.ID, newStock); err != nil {
			return err
		}
		record := &entity.ProductionRecord{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			QuantityProduced: in.Quantity,
			MaterialCost:     inventory.BatchMaterialCost(lines, in.Quantity).Round(domain.ScaleQuantity),
			ProducedBy:       in.ProducedBy,
			ProductionDate:   in.ProductionDate,
			Notes:            in.Notes,
			CreatedAt:        uc.now(),
		}
		if err := uow.Production.Create(ctx, record); err != nil {
			return err
		}
		out = &dto.ProductionResponse{
			Record:        toProductionRecordResponse(record),
			NewStockLevel: newStock,
			Consumed:      toShortfallDTOs(feasibility.Shortfalls),
		}
		return nil
	})
	if err != nil {
		failSpan(span, err)
		uc.logRejection(in, err)
		return nil, err
	}

	uc.log.Info().
		Str("product_id", in.ProductID).
		Int64("quantity", in.Quantity).
		Int64("stock_level", out.NewStockLevel).
		Str("material_cost", out.Record.MaterialCost.String()).
		Str("state", ProductionCommitted).
		Msg("producción confirmada")
	return out, nil
}

// ListRecords historial de producción, más reciente primero. productID vacío = todos.
func (uc *ProductionUseCase) ListRecords(ctx context.Context, productID string, limit int) ([]dto.ProductionRecordResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	records, err := uc.repos.Production.List(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toProductionRecordResponse(r))
	}
	return out, nil
}

func (uc *ProductionUseCase) logRejection(in ProduceInput, err error) {
	ev := uc.log.Warn()
	if domain.IsRetryable(err) {
		ev = uc.log.Error()
	}
	ev.Err(err).
		Str("product_id", in.ProductID).
		Int64("quantity", in.Quantity).
		Str("state", ProductionRejected).
		Msg("producción rechazada")
}

func validateProduceInput(in ProduceInput) error {
	if in.ProductID == "" {
		return domain.NewValidationError("product_id", "requerido")
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	if in.ProducedBy == "" {
		return domain.NewValidationError("produced_by", "requerido")
	}
	return nil
}

// lockRecipe lee la receta y bloquea cada material en orden ascendente de ID, reemplazando
// los valores leídos por los bloqueados. Mantiene el orden de presentación de la receta.
func lockRecipe(ctx context.Context, uow repository.UnitOfWork, productID string) ([]entity.BOMLine, error) {
	lines, err := uow.BOM.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.Entry.MaterialID)
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.Material, len(ids))
	for _, id := range ids {
		m, err := uow.Materials.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.NewNotFoundError("material", id)
		}
		locked[id] = m
	}
	for i := range lines {
		lines[i].Material = *locked[lines[i].Entry.MaterialID]
	}
	return lines, nil
}
