package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement kinds.
const (
	MovimentoEntrada = "ENTRADA" // purchase, delivery
	MovimentoSaida   = "SAIDA"   // manual exit (waste, loss)
	MovimentoAjuste  = "AJUSTE"  // inventory count adjustment
	MovimentoVenda   = "VENDA"   // automatic deduction on order
	MovimentoEstorno = "ESTORNO" // restoration on order cancellation
)

// MovimentoEstoque is the append-only stock audit trail. One row per
// mutation, capturing the before/after quantities — the only source of truth
// for reconstructing why stock is what it is. Rows are never updated.
type MovimentoEstoque struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo                string    `gorm:"type:varchar(20);not null"`
	Quantidade          int       `gorm:"not null"`
	QuantidadeAnterior  int       `gorm:"not null;default:0"`
	QuantidadeNova      int       `gorm:"not null;default:0"`
	Motivo              string
	Referencia          *string `gorm:"type:varchar(100)"` // pedido numero, invoice number...
	UsuarioID           *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time  `gorm:"index"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (MovimentoEstoque) TableName() string { return "movimentacoes_estoque" }
