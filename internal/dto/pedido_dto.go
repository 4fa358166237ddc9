package dto

import (
	"time"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemPedidoRequest struct {
	ProdutoID  uuid.UUID `json:"produto_id" validate:"required"`
	Quantidade int       `json:"quantidade" validate:"required,gt=0"`
}

type PedidoCreateRequest struct {
	TipoCliente    string              `json:"tipo_cliente" validate:"required,oneof=FUNCIONARIO PACIENTE"`
	FuncionarioID  *uuid.UUID          `json:"funcionario_id"`
	Matricula      *string             `json:"matricula" validate:"omitempty,max=20"`
	FormaPagamento string              `json:"forma_pagamento" validate:"required,oneof=CONVENIO PIX CARTAO DINHEIRO"`
	Observacao     *string             `json:"observacao" validate:"omitempty,max=255"`
	Itens          []ItemPedidoRequest `json:"itens" validate:"required,min=1,dive"`
}

type PedidoStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDENTE PREPARANDO PRONTO ENTREGUE CANCELADO"`
}

type PedidoFilter struct {
	Status        string `form:"status"`
	TipoCliente   string `form:"tipo_cliente"`
	FuncionarioID string `form:"funcionario_id"`
	DataInicio    string `form:"data_inicio"`
	DataFim       string `form:"data_fim"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

type ItemPedidoResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProdutoID     uuid.UUID       `json:"produto_id"`
	Produto       string          `json:"produto,omitempty"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID             uuid.UUID            `json:"id"`
	Numero         string               `json:"numero"`
	TipoCliente    string               `json:"tipo_cliente"`
	FuncionarioID  *uuid.UUID           `json:"funcionario_id,omitempty"`
	Funcionario    string               `json:"funcionario,omitempty"`
	ValorTotal     decimal.Decimal      `json:"valor_total"`
	Status         string               `json:"status"`
	FormaPagamento string               `json:"forma_pagamento"`
	Competencia    string               `json:"competencia,omitempty"`
	Observacao     *string              `json:"observacao,omitempty"`
	Itens          []ItemPedidoResponse `json:"itens"`
	CreatedAt      time.Time            `json:"created_at"`
}

func PedidoToResponse(p *model.Pedido) PedidoResponse {
	resp := PedidoResponse{
		ID:             p.ID,
		Numero:         p.Numero,
		TipoCliente:    p.TipoCliente,
		FuncionarioID:  p.FuncionarioID,
		ValorTotal:     p.ValorTotal,
		Status:         p.Status,
		FormaPagamento: p.FormaPagamento,
		Observacao:     p.Observacao,
		Itens:          make([]ItemPedidoResponse, 0, len(p.Itens)),
		CreatedAt:      p.CreatedAt,
	}
	if p.Funcionario != nil {
		resp.Funcionario = p.Funcionario.Nome
	}
	if p.Competencia != nil {
		resp.Competencia = p.Competencia.Referencia()
	}
	for i := range p.Itens {
		it := &p.Itens[i]
		item := ItemPedidoResponse{
			ID:            it.ID,
			ProdutoID:     it.ProdutoID,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			Subtotal:      it.Subtotal,
		}
		if it.Produto != nil {
			item.Produto = it.Produto.Nome
		}
		resp.Itens = append(resp.Itens, item)
	}
	return resp
}

type PedidoListResponse struct {
	Pedidos  []PedidoResponse `json:"pedidos"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type PedidoResumoDia struct {
	Data         string           `json:"data"`
	TotalPedidos int64            `json:"total_pedidos"`
	ValorTotal   decimal.Decimal  `json:"valor_total"`
	PorStatus    map[string]int64 `json:"por_status"`
}
