package dto

import (
	"time"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProdutoCreateRequest struct {
	Nome             string          `json:"nome" validate:"required,min=2,max=120"`
	CategoriaID      uuid.UUID       `json:"categoria_id" validate:"required"`
	Preco            decimal.Decimal `json:"preco" validate:"required,gt=0"`
	ControlarEstoque bool            `json:"controlar_estoque"`
	EstoqueAtual     int             `json:"estoque_atual" validate:"gte=0"`
	EstoqueMinimo    int             `json:"estoque_minimo" validate:"gte=0"`
	EstoqueMaximo    int             `json:"estoque_maximo" validate:"gte=0"`
}

type ProdutoUpdateRequest struct {
	Nome             *string          `json:"nome" validate:"omitempty,min=2,max=120"`
	CategoriaID      *uuid.UUID       `json:"categoria_id"`
	Preco            *decimal.Decimal `json:"preco" validate:"omitempty,gt=0"`
	Ativo            *bool            `json:"ativo"`
	ControlarEstoque *bool            `json:"controlar_estoque"`
	EstoqueMinimo    *int             `json:"estoque_minimo" validate:"omitempty,gte=0"`
	EstoqueMaximo    *int             `json:"estoque_maximo" validate:"omitempty,gte=0"`
}

type ProdutoFilter struct {
	Ativo       string `form:"ativo"`
	CategoriaID string `form:"categoria_id"`
	Nome        string `form:"nome"`
}

type ProdutoResponse struct {
	ID               uuid.UUID       `json:"id"`
	Nome             string          `json:"nome"`
	CategoriaID      uuid.UUID       `json:"categoria_id"`
	Categoria        string          `json:"categoria,omitempty"`
	Preco            decimal.Decimal `json:"preco"`
	Ativo            bool            `json:"ativo"`
	ControlarEstoque bool            `json:"controlar_estoque"`
	EstoqueAtual     int             `json:"estoque_atual"`
	EstoqueMinimo    int             `json:"estoque_minimo"`
	EstoqueMaximo    int             `json:"estoque_maximo"`
	CreatedAt        time.Time       `json:"created_at"`
}

func ProdutoToResponse(p *model.Produto) ProdutoResponse {
	resp := ProdutoResponse{
		ID:               p.ID,
		Nome:             p.Nome,
		CategoriaID:      p.CategoriaID,
		Preco:            p.Preco,
		Ativo:            p.Ativo,
		ControlarEstoque: p.ControlarEstoque,
		EstoqueAtual:     p.EstoqueAtual,
		EstoqueMinimo:    p.EstoqueMinimo,
		EstoqueMaximo:    p.EstoqueMaximo,
		CreatedAt:        p.CreatedAt,
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nome
	}
	return resp
}

type CategoriaRequest struct {
	Nome      string  `json:"nome" validate:"required,min=2,max=80"`
	Descricao *string `json:"descricao" validate:"omitempty,max=255"`
}

type CategoriaResponse struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Descricao *string   `json:"descricao,omitempty"`
	Ativo     bool      `json:"ativo"`
}

func CategoriaToResponse(c *model.Categoria) CategoriaResponse {
	return CategoriaResponse{ID: c.ID, Nome: c.Nome, Descricao: c.Descricao, Ativo: c.Ativo}
}
