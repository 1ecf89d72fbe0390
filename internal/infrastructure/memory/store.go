// Package memory implementa los puertos de repositorio sobre hashicorp/go-memdb.
// Las transacciones de escritura se serializan (un solo escritor a la vez), lo que equivale
// a bloquear todas las filas que toca la transacción; las lecturas ven una instantánea.
package memory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

const (
	tableProducts   = "products"
	tableMaterials  = "materials"
	tableBOM        = "bom_entries"
	tableProduction = "production_records"
	tableLabor      = "labor_entries"
	tableSettings   = "settings"
	tableOrders     = "orders"
	tableOrderItems = "order_line_items"
	tableFinance    = "finance_transactions"

	indexID      = "id"
	indexProduct = "product"
	indexPair    = "pair"
	indexOrder   = "order"
)

var (
	_ catalog.TxRunner   = (*Store)(nil)
	_ inventory.TxRunner = (*Store)(nil)
	_ sales.TxRunner     = (*Store)(nil)
)

func schema() *memdb.DBSchema {
	id := func(field string) *memdb.IndexSchema {
		return &memdb.IndexSchema{Name: indexID, Unique: true, Indexer: &memdb.StringFieldIndex{Field: field}}
	}
	byProduct := &memdb.IndexSchema{Name: indexProduct, Indexer: &memdb.StringFieldIndex{Field: "ProductID"}}
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableProducts:  {Name: tableProducts, Indexes: map[string]*memdb.IndexSchema{indexID: id("ID")}},
			tableMaterials: {Name: tableMaterials, Indexes: map[string]*memdb.IndexSchema{indexID: id("ID")}},
			tableBOM: {Name: tableBOM, Indexes: map[string]*memdb.IndexSchema{
				indexID:      id("ID"),
				indexProduct: byProduct,
				indexPair: {
					Name:   indexPair,
					Unique: true,
					Indexer: &memdb.CompoundIndex{Indexes: []memdb.Indexer{
						&memdb.StringFieldIndex{Field: "ProductID"},
						&memdb.StringFieldIndex{Field: "MaterialID"},
					}},
				},
			}},
			tableProduction: {Name: tableProduction, Indexes: map[string]*memdb.IndexSchema{
				indexID:      id("ID"),
				indexProduct: byProduct,
			}},
			tableLabor: {Name: tableLabor, Indexes: map[string]*memdb.IndexSchema{
				indexID:      id("ID"),
				indexProduct: byProduct,
			}},
			tableSettings: {Name: tableSettings, Indexes: map[string]*memdb.IndexSchema{indexID: id("Key")}},
			tableOrders:   {Name: tableOrders, Indexes: map[string]*memdb.IndexSchema{indexID: id("ID")}},
			tableOrderItems: {Name: tableOrderItems, Indexes: map[string]*memdb.IndexSchema{
				indexID:    id("ID"),
				indexOrder: {Name: indexOrder, Indexer: &memdb.StringFieldIndex{Field: "OrderID"}},
			}},
			tableFinance: {Name: tableFinance, Indexes: map[string]*memdb.IndexSchema{indexID: id("ID")}},
		},
	}
}

// Store base en memoria con la misma semántica transaccional que el TxRunner de PostgreSQL.
type Store struct {
	db *memdb.MemDB
}

// New crea una base vacía.
func New() (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("crear memdb: %w", err)
	}
	return &Store{db: db}, nil
}

// Run ejecuta fn en una transacción de escritura. Error o pánico en fn → Abort, nada queda escrito.
func (s *Store) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreFailure("begin transaction", err)
	}
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := fn(newUnitOfWork(session{db: s.db, txn: txn})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewStoreFailure("commit transaction", err)
	}
	txn.Commit()
	return nil
}

// Repos repositorios fuera de transacción: cada lectura usa una instantánea y cada escritura
// se confirma por separado.
func (s *Store) Repos() repository.UnitOfWork {
	return newUnitOfWork(session{db: s.db})
}

func newUnitOfWork(s session) repository.UnitOfWork {
	return repository.UnitOfWork{
		Products:   &ProductRepo{s: s},
		Materials:  &MaterialRepo{s: s},
		BOM:        &BOMRepo{s: s},
		Production: &ProductionRepo{s: s},
		Labor:      &LaborRepo{s: s},
		Settings:   &SettingRepo{s: s},
		Orders:     &OrderRepo{s: s},
		Finance:    &FinanceRepo{s: s},
	}
}

// session txn != nil: todo ocurre dentro de esa transacción.
type session struct {
	db  *memdb.MemDB
	txn *memdb.Txn
}

func (s session) read(fn func(txn *memdb.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	txn := s.db.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

func (s session) write(fn func(txn *memdb.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func first(txn *memdb.Txn, table, index string, args ...interface{}) (interface{}, error) {
	raw, err := txn.First(table, index, args...)
	if err != nil {
		return nil, domain.NewStoreFailure("read "+table, err)
	}
	return raw, nil
}

func all(txn *memdb.Txn, table, index string, args ...interface{}) ([]interface{}, error) {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, domain.NewStoreFailure("read "+table, err)
	}
	var out []interface{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, obj)
	}
	return out, nil
}

func insert(txn *memdb.Txn, table string, obj interface{}) error {
	if err := txn.Insert(table, obj); err != nil {
		return domain.NewStoreFailure("write "+table, err)
	}
	return nil
}
