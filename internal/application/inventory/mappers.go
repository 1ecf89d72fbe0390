package inventory

import (
	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

func toShortfallDTOs(in []domain.Shortfall) []dto.ShortfallDTO {
	out := make([]dto.ShortfallDTO, 0, len(in))
	for _, s := range in {
		out = append(out, dto.ShortfallDTO{
			MaterialID:   s.MaterialID,
			MaterialName: s.MaterialName,
			Unit:         s.Unit,
			Required:     s.Required,
			Available:    s.Available,
			Deficit:      s.Deficit,
		})
	}
	return out
}

func toBOMLineResponse(l entity.BOMLine) dto.BOMLineResponse {
	return dto.BOMLineResponse{
		ID:             l.Entry.ID,
		ProductID:      l.Entry.ProductID,
		MaterialID:     l.Entry.MaterialID,
		MaterialName:   l.Material.Name,
		Unit:           l.Material.Unit,
		QuantityNeeded: l.Entry.QuantityNeeded,
		CostPerUnit:    l.Material.CostPerUnit,
		LineCost:       l.Material.CostPerUnit.Mul(l.Entry.QuantityNeeded),
	}
}

func toProductionRecordResponse(r *entity.ProductionRecord) dto.ProductionRecordResponse {
	return dto.ProductionRecordResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		QuantityProduced: r.QuantityProduced,
		MaterialCost:     r.MaterialCost,
		ProducedBy:       r.ProducedBy,
		ProductionDate:   r.ProductionDate,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
	}
}
