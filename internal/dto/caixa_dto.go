package dto

import (
	"time"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CaixaAbrirRequest struct {
	ValorAbertura decimal.Decimal `json:"valor_abertura" validate:"min=0"`
	Observacoes   *string         `json:"observacoes" validate:"omitempty,max=255"`
}

type CaixaFecharRequest struct {
	ValorFechamento decimal.Decimal `json:"valor_fechamento" validate:"min=0"`
	Observacoes     *string         `json:"observacoes" validate:"omitempty,max=255"`
}

// CaixaMovimentoRequest covers sangria and suprimento.
type CaixaMovimentoRequest struct {
	Valor     decimal.Decimal `json:"valor" validate:"required,gt=0"`
	Descricao string          `json:"descricao" validate:"required,min=3,max=255"`
}

type CaixaResponse struct {
	ID                  uuid.UUID        `json:"id"`
	Data                string           `json:"data"`
	ValorAbertura       decimal.Decimal  `json:"valor_abertura"`
	AbertoEm            time.Time        `json:"aberto_em"`
	ValorFechamento     *decimal.Decimal `json:"valor_fechamento,omitempty"`
	ValorEsperado       *decimal.Decimal `json:"valor_esperado,omitempty"`
	Diferenca           *decimal.Decimal `json:"diferenca,omitempty"`
	FechadoEm           *time.Time       `json:"fechado_em,omitempty"`
	Status              string           `json:"status"`
	Observacoes         *string          `json:"observacoes,omitempty"`
}

func CaixaToResponse(c *model.Caixa) CaixaResponse {
	return CaixaResponse{
		ID:              c.ID,
		Data:            c.Data.Format("2006-01-02"),
		ValorAbertura:   c.ValorAbertura,
		AbertoEm:        c.AbertoEm,
		ValorFechamento: c.ValorFechamento,
		ValorEsperado:   c.ValorEsperado,
		Diferenca:       c.Diferenca,
		FechadoEm:       c.FechadoEm,
		Status:          c.Status,
		Observacoes:     c.Observacoes,
	}
}

type TransacaoCaixaResponse struct {
	ID             uuid.UUID       `json:"id"`
	Tipo           string          `json:"tipo"`
	Valor          decimal.Decimal `json:"valor"`
	FormaPagamento *string         `json:"forma_pagamento,omitempty"`
	PedidoID       *uuid.UUID      `json:"pedido_id,omitempty"`
	Descricao      string          `json:"descricao,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func TransacaoToResponse(t *model.TransacaoCaixa) TransacaoCaixaResponse {
	return TransacaoCaixaResponse{
		ID:             t.ID,
		Tipo:           t.Tipo,
		Valor:          t.Valor,
		FormaPagamento: t.FormaPagamento,
		PedidoID:       t.PedidoID,
		Descricao:      t.Descricao,
		CreatedAt:      t.CreatedAt,
	}
}

// CaixaResumoResponse is the live snapshot of the open register: running
// totals per payment method plus the expected cash amount so far.
type CaixaResumoResponse struct {
	Caixa           CaixaResponse              `json:"caixa"`
	VendasPorForma  map[string]decimal.Decimal `json:"vendas_por_forma"`
	TotalVendas     decimal.Decimal            `json:"total_vendas"`
	TotalSangrias   decimal.Decimal            `json:"total_sangrias"`
	TotalSuprimentos decimal.Decimal           `json:"total_suprimentos"`
	DinheiroEsperado decimal.Decimal           `json:"dinheiro_esperado"`
}

type CaixaRelatorioFilter struct {
	DataInicio string `form:"data_inicio" validate:"required"`
	DataFim    string `form:"data_fim" validate:"required"`
}

type CaixaRelatorioResponse struct {
	Periodo        string          `json:"periodo"`
	Caixas         []CaixaResponse `json:"caixas"`
	TotalAberturas decimal.Decimal `json:"total_aberturas"`
	TotalVendas    decimal.Decimal `json:"total_vendas"`
	TotalDiferenca decimal.Decimal `json:"total_diferenca"`
}
