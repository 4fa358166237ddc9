package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cash register status values.
const (
	CaixaAberto  = "ABERTO"
	CaixaFechado = "FECHADO"
)

// Cash transaction kinds.
const (
	TransacaoVenda      = "VENDA"      // sale from an order
	TransacaoSangria    = "SANGRIA"    // cash withdrawal
	TransacaoSuprimento = "SUPRIMENTO" // cash addition during the day
	TransacaoTroco      = "TROCO"      // opening change float
)

// Caixa is the daily cash register — one row per calendar date, ever.
// ValorEsperado and Diferenca are computed at closing time:
// esperado = abertura + vendas em dinheiro + suprimentos − sangrias.
type Caixa struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Data time.Time `gorm:"type:date;uniqueIndex;not null"`

	ValorAbertura     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	UsuarioAberturaID *uuid.UUID      `gorm:"type:uuid"`
	AbertoEm          time.Time

	ValorFechamento     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ValorEsperado       *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Diferenca           *decimal.Decimal `gorm:"type:decimal(10,2)"`
	UsuarioFechamentoID *uuid.UUID       `gorm:"type:uuid"`
	FechadoEm           *time.Time

	Status      string `gorm:"type:varchar(20);not null;default:'ABERTO'"`
	Observacoes *string

	Transacoes []TransacaoCaixa `gorm:"foreignKey:CaixaID"`
}

func (Caixa) TableName() string { return "caixas" }

// TransacaoCaixa is an immutable event in the cash ledger. FormaPagamento is
// only meaningful for VENDA. Transactions are never modified or deleted —
// cancellations append inverse entries.
type TransacaoCaixa struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo           string          `gorm:"type:varchar(20);not null"`
	Valor          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FormaPagamento *string         `gorm:"type:varchar(20)"`
	PedidoID       *uuid.UUID      `gorm:"type:uuid"`
	Descricao      string
	UsuarioID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
}

func (TransacaoCaixa) TableName() string { return "transacoes_caixa" }
