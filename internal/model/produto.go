package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categoria classifies products (lanches, bebidas, refeições...).
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Descricao *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization for Portuguese names.
func (Categoria) TableName() string { return "categorias" }

// Produto is a cafeteria menu item. Products referenced by orders are never
// hard-deleted, only deactivated. Stock counters are only meaningful when
// ControlarEstoque is true.
type Produto struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome             string          `gorm:"index;not null"`
	CategoriaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Preco            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Ativo            bool            `gorm:"not null;default:true"`
	ControlarEstoque bool            `gorm:"not null;default:false"`
	EstoqueAtual     int             `gorm:"not null;default:0"`
	EstoqueMinimo    int             `gorm:"not null;default:0"`
	EstoqueMaximo    int             `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Produto) TableName() string { return "produtos" }
