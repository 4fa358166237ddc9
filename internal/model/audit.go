package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only change record written by the services at the
// point where they know the before/after state. For order mutations the row
// is appended within the same transaction as the domain change.
type AuditLog struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID       *uuid.UUID `gorm:"type:uuid;index"`
	Acao            string     `gorm:"type:varchar(30);not null"` // CRIAR | ATUALIZAR | ATUALIZAR_STATUS | DESATIVAR | FECHAR
	Tabela          string     `gorm:"type:varchar(50);not null;index"`
	RegistroID      *string    `gorm:"type:varchar(40)"`
	DadosAnteriores json.RawMessage `gorm:"type:jsonb"`
	DadosNovos      json.RawMessage `gorm:"type:jsonb"`
	CreatedAt       time.Time       `gorm:"index"`
}

func (AuditLog) TableName() string { return "audit_logs" }
