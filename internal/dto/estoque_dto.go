package dto

import (
	"time"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
)

type EntradaEstoqueRequest struct {
	ProdutoID  uuid.UUID `json:"produto_id" validate:"required"`
	Quantidade int       `json:"quantidade" validate:"required,gt=0"`
	Motivo     string    `json:"motivo" validate:"required,min=3,max=255"`
	Referencia *string   `json:"referencia" validate:"omitempty,max=100"`
}

type SaidaEstoqueRequest struct {
	ProdutoID  uuid.UUID `json:"produto_id" validate:"required"`
	Quantidade int       `json:"quantidade" validate:"required,gt=0"`
	Motivo     string    `json:"motivo" validate:"required,min=3,max=255"`
}

// AjusteEstoqueRequest sets the counted absolute quantity after a physical
// inventory.
type AjusteEstoqueRequest struct {
	ProdutoID      uuid.UUID `json:"produto_id" validate:"required"`
	QuantidadeNova int       `json:"quantidade_nova" validate:"gte=0"`
	Motivo         string    `json:"motivo" validate:"required,min=3,max=255"`
}

type MovimentoFilter struct {
	ProdutoID string `form:"produto_id"`
	Tipo      string `form:"tipo"`
	Limit     int    `form:"limit"`
}

type MovimentoEstoqueResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProdutoID          uuid.UUID `json:"produto_id"`
	Produto            string    `json:"produto,omitempty"`
	Tipo               string    `json:"tipo"`
	Quantidade         int       `json:"quantidade"`
	QuantidadeAnterior int       `json:"quantidade_anterior"`
	QuantidadeNova     int       `json:"quantidade_nova"`
	Motivo             string    `json:"motivo,omitempty"`
	Referencia         *string   `json:"referencia,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func MovimentoToResponse(m *model.MovimentoEstoque) MovimentoEstoqueResponse {
	resp := MovimentoEstoqueResponse{
		ID:                 m.ID,
		ProdutoID:          m.ProdutoID,
		Tipo:               m.Tipo,
		Quantidade:         m.Quantidade,
		QuantidadeAnterior: m.QuantidadeAnterior,
		QuantidadeNova:     m.QuantidadeNova,
		Motivo:             m.Motivo,
		Referencia:         m.Referencia,
		CreatedAt:          m.CreatedAt,
	}
	if m.Produto != nil {
		resp.Produto = m.Produto.Nome
	}
	return resp
}

type EstoqueResumoResponse struct {
	TotalProdutos      int64             `json:"total_produtos"`
	AbaixoDoMinimo     int64             `json:"abaixo_do_minimo"`
	Zerados            int64             `json:"zerados"`
	ProdutosEmAlerta   []ProdutoResponse `json:"produtos_em_alerta"`
}

type LimitesEstoqueRequest struct {
	EstoqueMinimo int `json:"estoque_minimo" validate:"gte=0"`
	EstoqueMaximo int `json:"estoque_maximo" validate:"gte=0"`
}
