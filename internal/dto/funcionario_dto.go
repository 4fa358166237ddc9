package dto

import (
	"time"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FuncionarioCreateRequest struct {
	Matricula    string           `json:"matricula" validate:"required,min=1,max=20"`
	CPF          string           `json:"cpf" validate:"required,min=11,max=14"`
	Nome         string           `json:"nome" validate:"required,min=3,max=120"`
	SetorID      *uuid.UUID       `json:"setor_id"`
	LimiteMensal *decimal.Decimal `json:"limite_mensal" validate:"omitempty,gt=0"`
}

type FuncionarioUpdateRequest struct {
	Nome         *string          `json:"nome" validate:"omitempty,min=3,max=120"`
	SetorID      *uuid.UUID       `json:"setor_id"`
	LimiteMensal *decimal.Decimal `json:"limite_mensal" validate:"omitempty,gt=0"`
	Ativo        *bool            `json:"ativo"`
}

type FuncionarioFilter struct {
	Ativo   string `form:"ativo"`
	SetorID string `form:"setor_id"`
	Busca   string `form:"busca"`
}

type FuncionarioResponse struct {
	ID           uuid.UUID       `json:"id"`
	Matricula    string          `json:"matricula"`
	CPF          string          `json:"cpf"`
	Nome         string          `json:"nome"`
	SetorID      *uuid.UUID      `json:"setor_id,omitempty"`
	Setor        string          `json:"setor,omitempty"`
	LimiteMensal decimal.Decimal `json:"limite_mensal"`
	Ativo        bool            `json:"ativo"`
	CreatedAt    time.Time       `json:"created_at"`
}

func FuncionarioToResponse(f *model.Funcionario) FuncionarioResponse {
	resp := FuncionarioResponse{
		ID:           f.ID,
		Matricula:    f.Matricula,
		CPF:          f.CPF,
		Nome:         f.Nome,
		SetorID:      f.SetorID,
		LimiteMensal: f.LimiteMensal,
		Ativo:        f.Ativo,
		CreatedAt:    f.CreatedAt,
	}
	if f.Setor != nil {
		resp.Setor = f.Setor.Nome
	}
	return resp
}

// FuncionarioSaldoResponse is the lookup payload used at the counter: the
// employee plus their remaining allowance in the open period.
type FuncionarioSaldoResponse struct {
	Funcionario    FuncionarioResponse `json:"funcionario"`
	Competencia    string              `json:"competencia"`
	ConsumoMes     decimal.Decimal     `json:"consumo_mes"`
	SaldoDisponivel decimal.Decimal    `json:"saldo_disponivel"`
}

type SetorRequest struct {
	Nome        string  `json:"nome" validate:"required,min=2,max=80"`
	CentroCusto *string `json:"centro_custo" validate:"omitempty,max=40"`
	Responsavel *string `json:"responsavel" validate:"omitempty,max=120"`
}

type SetorResponse struct {
	ID          uuid.UUID `json:"id"`
	Nome        string    `json:"nome"`
	CentroCusto *string   `json:"centro_custo,omitempty"`
	Responsavel *string   `json:"responsavel,omitempty"`
	Ativo       bool      `json:"ativo"`
}

func SetorToResponse(s *model.Setor) SetorResponse {
	return SetorResponse{ID: s.ID, Nome: s.Nome, CentroCusto: s.CentroCusto, Responsavel: s.Responsavel, Ativo: s.Ativo}
}
