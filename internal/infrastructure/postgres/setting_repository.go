package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo ajustes globales clave/valor.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository pasar pool o tx.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

func (r *SettingRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var s entity.Setting
	err := r.q.QueryRow(ctx, `SELECT key, value, updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get setting", err)
	}
	return &s, nil
}

// Upsert última escritura gana.
func (r *SettingRepo) Upsert(ctx context.Context, s *entity.Setting) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.Key, s.Value, s.UpdatedAt,
	)
	if err != nil {
		return storeErr("upsert setting", err)
	}
	return nil
}
