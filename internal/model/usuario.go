package model

import (
	"time"

	"github.com/google/uuid"
)

// Operator roles.
const (
	PerfilAdmin     = "ADMIN"
	PerfilAtendente = "ATENDENTE"
)

// Usuario is a staff operator of the system (not an employee customer).
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	NomeCompleto string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Perfil       string `gorm:"type:varchar(20);not null"`
	Ativo        bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
