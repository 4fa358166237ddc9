package infra

import (
	"fmt"

	"github.com/XxProLuks/SisLanch/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the full schema. gen_random_uuid() defaults require the
// pgcrypto extension, created here before migration.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return nil, fmt.Errorf("create extension pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Setor{},
		&model.Funcionario{},
		&model.Categoria{},
		&model.Produto{},
		&model.Competencia{},
		&model.ConsumoMensal{},
		&model.Pedido{},
		&model.ItemPedido{},
		&model.PedidoSequencia{},
		&model.Caixa{},
		&model.TransacaoCaixa{},
		&model.MovimentoEstoque{},
		&model.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
