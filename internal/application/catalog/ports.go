package catalog

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}
