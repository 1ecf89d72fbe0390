package repository

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

// SettingRepository ajustes globales clave/valor. Upsert: última escritura gana.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	Upsert(ctx context.Context, setting *entity.Setting) error
}
