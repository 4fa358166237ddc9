package dto

import (
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=4"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

type UsuarioCreateRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=60,alphanum"`
	NomeCompleto string  `json:"nome_completo" validate:"required,min=3,max=120"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	Perfil       string  `json:"perfil" validate:"required,oneof=ADMIN ATENDENTE"`
}

type UsuarioResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	NomeCompleto string    `json:"nome_completo"`
	Email        *string   `json:"email,omitempty"`
	Perfil       string    `json:"perfil"`
	Ativo        bool      `json:"ativo"`
}

func UsuarioToResponse(u *model.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:           u.ID,
		Username:     u.Username,
		NomeCompleto: u.NomeCompleto,
		Email:        u.Email,
		Perfil:       u.Perfil,
		Ativo:        u.Ativo,
	}
}
