package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Setor groups employees by department / cost center for payroll export.
type Setor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string    `gorm:"uniqueIndex;not null"`
	CentroCusto *string
	Responsavel *string
	Ativo       bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Setor) TableName() string { return "setores" }

// Funcionario is a hospital employee entitled to the meal allowance
// (convênio). Matricula and CPF are unique across all employees, active or
// not. LimiteMensal caps consumption per competência.
type Funcionario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Matricula    string    `gorm:"uniqueIndex;not null"`
	CPF          string    `gorm:"column:cpf;uniqueIndex;not null"`
	Nome         string    `gorm:"index;not null"`
	SetorID      *uuid.UUID `gorm:"type:uuid;index"`
	LimiteMensal decimal.Decimal `gorm:"type:decimal(10,2);not null;default:500.00"`
	Ativo        bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Setor *Setor `gorm:"foreignKey:SetorID"`
}

func (Funcionario) TableName() string { return "funcionarios" }
