package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Competência status values.
const (
	CompetenciaAberta  = "ABERTA"
	CompetenciaFechada = "FECHADA"
)

// Competencia is a billing month (ano, mes) against which employee
// consumption accrues. Exactly one competência is ABERTA in steady state:
// closing one always creates the next.
type Competencia struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Ano          int       `gorm:"uniqueIndex:idx_ano_mes;not null"`
	Mes          int       `gorm:"uniqueIndex:idx_ano_mes;not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'ABERTA'"`
	FechadaEm    *time.Time
	FechadaPorID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (Competencia) TableName() string { return "competencias" }

// Referencia formats the competência as MM/YYYY for exports and responses.
func (c Competencia) Referencia() string { return fmt.Sprintf("%02d/%d", c.Mes, c.Ano) }

// ConsumoMensal is the running consumption total of one employee in one
// competência. Exactly one row per (funcionario, competencia) — the pair is
// unique by constraint. ValorTotal equals the sum of the employee's
// non-cancelled orders in that competência and is floored at zero on reversal.
type ConsumoMensal struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FuncionarioID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_funcionario_competencia;not null"`
	CompetenciaID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_funcionario_competencia;not null"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	UpdatedAt     time.Time

	Funcionario *Funcionario `gorm:"foreignKey:FuncionarioID"`
	Competencia *Competencia `gorm:"foreignKey:CompetenciaID"`
}

func (ConsumoMensal) TableName() string { return "consumos_mensais" }
