package repository

// UnitOfWork repositorios atados a una misma transacción.
// Todo lo escrito a través de ellos se confirma o se revierte junto.
type UnitOfWork struct {
	Products   ProductRepository
	Materials  MaterialRepository
	BOM        BOMRepository
	Production ProductionRepository
	Labor      LaborRepository
	Settings   SettingRepository
	Orders     OrderRepository
	Finance    FinanceRepository
}
