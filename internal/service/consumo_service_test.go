package service

import (
	"context"
	"testing"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsumoFixture() (ConsumoService, *stubCompetenciaRepo, *model.Funcionario, uuid.UUID) {
	repo := newStubCompetenciaRepo()
	competencia := repo.add(&model.Competencia{Ano: 2026, Mes: 8, Status: model.CompetenciaAberta})
	f := &model.Funcionario{
		ID:           uuid.New(),
		Matricula:    "12345",
		Nome:         "Maria Souza",
		LimiteMensal: decimal.RequireFromString("500.00"),
		Ativo:        true,
	}
	return NewConsumoService(repo), repo, f, competencia.ID
}

func TestSaldoSemConsumo(t *testing.T) {
	svc, _, f, competenciaID := newConsumoFixture()

	consumido, saldo, err := svc.Saldo(context.Background(), f, competenciaID)
	require.NoError(t, err)
	assert.True(t, consumido.IsZero())
	assert.True(t, saldo.Equal(decimal.RequireFromString("500.00")))
}

func TestCobrarAcumulaEAtualizaSaldo(t *testing.T) {
	svc, _, f, competenciaID := newConsumoFixture()

	require.NoError(t, svc.CobrarTx(nil, f, competenciaID, decimal.RequireFromString("37.80")))

	consumido, saldo, err := svc.Saldo(context.Background(), f, competenciaID)
	require.NoError(t, err)
	assert.True(t, consumido.Equal(decimal.RequireFromString("37.80")))
	assert.True(t, saldo.Equal(decimal.RequireFromString("462.20")))
}

func TestCobrarAlemDoLimite(t *testing.T) {
	svc, _, f, competenciaID := newConsumoFixture()

	require.NoError(t, svc.CobrarTx(nil, f, competenciaID, decimal.RequireFromString("37.80")))

	err := svc.CobrarTx(nil, f, competenciaID, decimal.RequireFromString("462.21"))
	assert.True(t, apierror.IsKind(err, apierror.KindLimitExceeded))
	assert.Contains(t, err.Error(), "462.20")

	// The exact remaining balance still fits.
	require.NoError(t, svc.CobrarTx(nil, f, competenciaID, decimal.RequireFromString("462.20")))
	consumido, saldo, err := svc.Saldo(context.Background(), f, competenciaID)
	require.NoError(t, err)
	assert.True(t, consumido.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, saldo.IsZero())
}

func TestEstornarNuncaNegativa(t *testing.T) {
	svc, _, f, competenciaID := newConsumoFixture()

	require.NoError(t, svc.CobrarTx(nil, f, competenciaID, decimal.RequireFromString("30.00")))

	// Reversal larger than the accrued total floors at zero.
	require.NoError(t, svc.EstornarTx(nil, f.ID, competenciaID, decimal.RequireFromString("45.00")))

	consumido, _, err := svc.Saldo(context.Background(), f, competenciaID)
	require.NoError(t, err)
	assert.True(t, consumido.IsZero())
}
