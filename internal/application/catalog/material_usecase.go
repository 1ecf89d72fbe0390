package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// MaterialUseCase CRUD de materias primas. Update con Quantity es un conteo manual.
type MaterialUseCase struct {
	txRunner TxRunner
	repos    repository.UnitOfWork
	log      *logger.Logger
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(txRunner TxRunner, repos repository.UnitOfWork, log *logger.Logger) *MaterialUseCase {
	return &MaterialUseCase{txRunner: txRunner, repos: repos, log: log.With("catalog")}
}

func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	m := &entity.Material{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		Quantity:     in.Quantity,
		Unit:         strings.TrimSpace(in.Unit),
		Supplier:     strings.TrimSpace(in.Supplier),
		ReorderPoint: in.ReorderPoint,
		CostPerUnit:  in.CostPerUnit,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := validateMaterial(m); err != nil {
		return nil, err
	}
	if err := uc.repos.Materials.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("material_id", m.ID).Str("name", m.Name).Msg("material creado")
	return toMaterialResponse(m), nil
}

func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repos.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFoundError("material", id)
	}
	return toMaterialResponse(m), nil
}

// Update aplica los campos presentes con la fila bloqueada.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	var out *entity.Material
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		m, err := uow.Materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewNotFoundError("material", id)
		}
		if in.Name != nil {
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.Category != nil {
			m.Category = strings.TrimSpace(*in.Category)
		}
		if in.Quantity != nil {
			m.Quantity = *in.Quantity
		}
		if in.Unit != nil {
			m.Unit = strings.TrimSpace(*in.Unit)
		}
		if in.Supplier != nil {
			m.Supplier = strings.TrimSpace(*in.Supplier)
		}
		if in.ReorderPoint != nil {
			m.ReorderPoint = *in.ReorderPoint
		}
		if in.CostPerUnit != nil {
			m.CostPerUnit = *in.CostPerUnit
		}
		if err := validateMaterial(m); err != nil {
			return err
		}
		m.UpdatedAt = time.Now().UTC()
		if err := uow.Materials.Update(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("material_id", id).Msg("material actualizado")
	return toMaterialResponse(out), nil
}

func (uc *MaterialUseCase) List(ctx context.Context, lowStockOnly bool) ([]dto.MaterialResponse, error) {
	list, err := uc.repos.Materials.List(ctx, repository.MaterialFilter{LowStockOnly: lowStockOnly})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

func validateMaterial(m *entity.Material) error {
	switch {
	case m.Name == "":
		return domain.NewValidationError("material_name", "requerido")
	case m.Quantity.IsNegative():
		return domain.NewValidationError("quantity", "no puede ser negativa")
	case m.ReorderPoint.IsNegative():
		return domain.NewValidationError("reorder_point", "no puede ser negativo")
	case m.CostPerUnit.IsNegative():
		return domain.NewValidationError("cost_per_unit", "no puede ser negativo")
	}
	if err := domain.CheckScale("quantity", m.Quantity, domain.ScaleQuantity); err != nil {
		return err
	}
	if err := domain.CheckScale("reorder_point", m.ReorderPoint, domain.ScaleQuantity); err != nil {
		return err
	}
	return domain.CheckScale("cost_per_unit", m.CostPerUnit, domain.ScaleQuantity)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		Supplier:     m.Supplier,
		ReorderPoint: m.ReorderPoint,
		CostPerUnit:  m.CostPerUnit,
		NeedsReorder: m.NeedsReorder(),
		UpdatedAt:    m.UpdatedAt,
	}
}
