package inventory

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a ella.
// Si fn devuelve error (o entra en pánico) se hace rollback completo; si no, Commit.
// Las lecturas con GetForUpdate quedan bloqueadas hasta el fin de la transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}
