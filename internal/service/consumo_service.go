package service

import (
	"context"
	"fmt"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConsumoService manages the employee allowance ledger: one running total per
// (funcionario, competência), charged on convênio orders and reversed on
// cancellation.
type ConsumoService interface {
	Saldo(ctx context.Context, funcionario *model.Funcionario, competenciaID uuid.UUID) (decimal.Decimal, decimal.Decimal, error)
	Historico(ctx context.Context, funcionarioID uuid.UUID) ([]dto.ConsumoResponse, error)

	// CobrarTx charges valor against the employee's allowance inside the
	// order transaction. The consumption row is locked (SELECT FOR UPDATE) so
	// two concurrent orders for the same employee serialize and the limit
	// check sees the committed total of whichever ran first.
	CobrarTx(tx *gorm.DB, funcionario *model.Funcionario, competenciaID uuid.UUID, valor decimal.Decimal) error

	// EstornarTx reverses a charge on cancellation. The resulting total is
	// floored at zero, never negative.
	EstornarTx(tx *gorm.DB, funcionarioID, competenciaID uuid.UUID, valor decimal.Decimal) error
}

type consumoService struct {
	competenciaRepo repository.CompetenciaRepository
}

func NewConsumoService(competenciaRepo repository.CompetenciaRepository) ConsumoService {
	return &consumoService{competenciaRepo: competenciaRepo}
}

// Saldo returns (consumo do mês, saldo disponível). An employee without a
// consumption row in the period has consumed zero.
func (s *consumoService) Saldo(ctx context.Context, funcionario *model.Funcionario, competenciaID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	consumido := decimal.Zero
	c, err := s.competenciaRepo.FindConsumo(ctx, funcionario.ID, competenciaID)
	if err == nil {
		consumido = c.ValorTotal
	} else if err != gorm.ErrRecordNotFound {
		return decimal.Zero, decimal.Zero, err
	}
	return consumido, funcionario.LimiteMensal.Sub(consumido), nil
}

func (s *consumoService) Historico(ctx context.Context, funcionarioID uuid.UUID) ([]dto.ConsumoResponse, error) {
	consumos, err := s.competenciaRepo.ListConsumosByFuncionario(ctx, funcionarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumoResponse, 0, len(consumos))
	for i := range consumos {
		c := &consumos[i]
		resp := dto.ConsumoResponse{FuncionarioID: c.FuncionarioID, ValorTotal: c.ValorTotal}
		if c.Competencia != nil {
			resp.Competencia = c.Competencia.Referencia()
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *consumoService) CobrarTx(tx *gorm.DB, funcionario *model.Funcionario, competenciaID uuid.UUID, valor decimal.Decimal) error {
	consumo, err := s.competenciaRepo.FindConsumoForUpdateTx(tx, funcionario.ID, competenciaID)
	if err != nil {
		return err
	}
	saldo := funcionario.LimiteMensal.Sub(consumo.ValorTotal)
	if valor.GreaterThan(saldo) {
		return apierror.LimitExceeded(fmt.Sprintf(
			"Limite mensal excedido: saldo disponível R$ %s, pedido R$ %s",
			saldo.StringFixed(2), valor.StringFixed(2)))
	}
	consumo.ValorTotal = consumo.ValorTotal.Add(valor)
	return s.competenciaRepo.UpdateConsumoTx(tx, consumo)
}

func (s *consumoService) EstornarTx(tx *gorm.DB, funcionarioID, competenciaID uuid.UUID, valor decimal.Decimal) error {
	consumo, err := s.competenciaRepo.FindConsumoForUpdateTx(tx, funcionarioID, competenciaID)
	if err != nil {
		return err
	}
	novo := consumo.ValorTotal.Sub(valor)
	if novo.IsNegative() {
		novo = decimal.Zero
	}
	consumo.ValorTotal = novo
	return s.competenciaRepo.UpdateConsumoTx(tx, consumo)
}
