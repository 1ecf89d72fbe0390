package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var (
	_ catalog.TxRunner   = (*TxRunner)(nil)
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si fn devuelve error o entra en pánico no queda nada escrito.
func (r *TxRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUnitOfWork(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// NewUnitOfWork repos sobre q. Con el pool sirve para lecturas fuera de transacción.
func NewUnitOfWork(q Querier) repository.UnitOfWork {
	return repository.UnitOfWork{
		Products:   NewProductRepository(q),
		Materials:  NewMaterialRepository(q),
		BOM:        NewBOMRepository(q),
		Production: NewProductionRepository(q),
		Labor:      NewLaborRepository(q),
		Settings:   NewSettingRepository(q),
		Orders:     NewOrderRepository(q),
		Finance:    NewFinanceRepository(q),
	}
}
