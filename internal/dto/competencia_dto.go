package dto

import (
	"time"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CompetenciaResponse struct {
	ID         uuid.UUID  `json:"id"`
	Ano        int        `json:"ano"`
	Mes        int        `json:"mes"`
	Referencia string     `json:"referencia"`
	Status     string     `json:"status"`
	FechadaEm  *time.Time `json:"fechada_em,omitempty"`
}

func CompetenciaToResponse(c *model.Competencia) CompetenciaResponse {
	return CompetenciaResponse{
		ID:         c.ID,
		Ano:        c.Ano,
		Mes:        c.Mes,
		Referencia: c.Referencia(),
		Status:     c.Status,
		FechadaEm:  c.FechadaEm,
	}
}

// ConsumoResponse is one line of the payroll deduction report.
type ConsumoResponse struct {
	FuncionarioID uuid.UUID       `json:"funcionario_id"`
	Matricula     string          `json:"matricula"`
	Nome          string          `json:"nome"`
	Setor         string          `json:"setor,omitempty"`
	Competencia   string          `json:"competencia,omitempty"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	LimiteMensal  decimal.Decimal `json:"limite_mensal"`
}

// FecharCompetenciaResponse reports the close plus the automatically
// opened next period.
type FecharCompetenciaResponse struct {
	Fechada CompetenciaResponse `json:"fechada"`
	Proxima CompetenciaResponse `json:"proxima"`
}
