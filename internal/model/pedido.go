package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer kinds.
const (
	ClienteFuncionario = "FUNCIONARIO"
	ClientePaciente    = "PACIENTE"
)

// Order status values. ENTREGUE and CANCELADO are terminal.
const (
	PedidoPendente   = "PENDENTE"
	PedidoPreparando = "PREPARANDO"
	PedidoPronto     = "PRONTO"
	PedidoEntregue   = "ENTREGUE"
	PedidoCancelado  = "CANCELADO"
)

// Payment methods. CONVENIO is reserved for employee orders and settled via
// payroll deduction, outside the cash drawer.
const (
	PagamentoConvenio = "CONVENIO"
	PagamentoPix      = "PIX"
	PagamentoCartao   = "CARTAO"
	PagamentoDinheiro = "DINHEIRO"
)

// Pedido is a cafeteria order. Numero is a date-prefixed sequential string
// (YYYYMMDD + 4-digit daily counter), unique across all orders.
type Pedido struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero        string     `gorm:"uniqueIndex;not null"`
	TipoCliente   string     `gorm:"type:varchar(20);not null"`
	FuncionarioID *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID     uuid.UUID  `gorm:"type:uuid;not null"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDENTE';index"`
	FormaPagamento string         `gorm:"type:varchar(20);not null"`
	CompetenciaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Observacao    *string
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	Funcionario *Funcionario `gorm:"foreignKey:FuncionarioID"`
	Competencia *Competencia `gorm:"foreignKey:CompetenciaID"`
	Itens       []ItemPedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

func (Pedido) TableName() string { return "pedidos" }

// Terminal reports whether the order admits no further status transitions.
func (p *Pedido) Terminal() bool {
	return p.Status == PedidoEntregue || p.Status == PedidoCancelado
}

// ItemPedido is one order line. PrecoUnitario is snapshotted at sale time and
// never re-derived from the current product price.
type ItemPedido struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemPedido) TableName() string { return "itens_pedido" }

// PedidoSequencia is the per-day atomic order-number counter. Incremented with
// an upsert inside the order transaction, replacing the racy count-then-insert
// numbering of earlier versions.
type PedidoSequencia struct {
	Data    string `gorm:"type:varchar(8);primaryKey"` // YYYYMMDD
	Proximo int    `gorm:"not null;default:0"`
}

func (PedidoSequencia) TableName() string { return "pedido_sequencias" }
