package service

import (
	"context"
	"testing"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFuncionarioFixture() (FuncionarioService, *stubFuncionarioRepo, *stubCompetenciaRepo) {
	funcionarios := newStubFuncionarioRepo()
	competencias := newStubCompetenciaRepo()
	competencias.add(&model.Competencia{Ano: 2026, Mes: 8, Status: model.CompetenciaAberta})
	consumo := NewConsumoService(competencias)
	return NewFuncionarioService(funcionarios, competencias, consumo), funcionarios, competencias
}

func TestCriarFuncionarioNormalizaCPF(t *testing.T) {
	svc, repo, _ := newFuncionarioFixture()

	resp, err := svc.Criar(context.Background(), dto.FuncionarioCreateRequest{
		Matricula: "12345",
		CPF:       "529.982.247-25",
		Nome:      "Maria Souza",
	})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", repo.funcionarios[resp.ID].CPF)
	assert.True(t, resp.LimiteMensal.Equal(decimal.NewFromInt(500)), "default monthly allowance")
}

func TestCriarFuncionarioCPFInvalido(t *testing.T) {
	svc, _, _ := newFuncionarioFixture()

	_, err := svc.Criar(context.Background(), dto.FuncionarioCreateRequest{
		Matricula: "12345",
		CPF:       "529.982.247",
		Nome:      "Maria Souza",
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestCriarFuncionarioDuplicado(t *testing.T) {
	svc, _, _ := newFuncionarioFixture()

	_, err := svc.Criar(context.Background(), dto.FuncionarioCreateRequest{
		Matricula: "12345", CPF: "52998224725", Nome: "Maria Souza",
	})
	require.NoError(t, err)

	_, err = svc.Criar(context.Background(), dto.FuncionarioCreateRequest{
		Matricula: "12345", CPF: "11144477735", Nome: "Outra Pessoa",
	})
	assert.True(t, apierror.IsKind(err, apierror.KindAlreadyExists))

	_, err = svc.Criar(context.Background(), dto.FuncionarioCreateRequest{
		Matricula: "99999", CPF: "52998224725", Nome: "Outra Pessoa",
	})
	assert.True(t, apierror.IsKind(err, apierror.KindAlreadyExists))
}

func TestBuscarComSaldoPorMatriculaOuCPF(t *testing.T) {
	svc, repo, competencias := newFuncionarioFixture()
	f := repo.add(&model.Funcionario{
		Matricula:    "12345",
		CPF:          "52998224725",
		Nome:         "Maria Souza",
		LimiteMensal: decimal.RequireFromString("500.00"),
		Ativo:        true,
	})
	competencia, err := competencias.FindAberta(context.Background())
	require.NoError(t, err)
	competencias.consumos[consumoKey{f.ID, competencia.ID}] = &model.ConsumoMensal{
		FuncionarioID: f.ID,
		CompetenciaID: competencia.ID,
		ValorTotal:    decimal.RequireFromString("120.00"),
	}

	porMatricula, err := svc.BuscarComSaldo(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "08/2026", porMatricula.Competencia)
	assert.True(t, porMatricula.ConsumoMes.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, porMatricula.SaldoDisponivel.Equal(decimal.RequireFromString("380.00")))

	// Formatted CPF resolves to the same employee.
	porCPF, err := svc.BuscarComSaldo(context.Background(), "529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, porMatricula.Funcionario.ID, porCPF.Funcionario.ID)
}

func TestBuscarComSaldoSemCompetencia(t *testing.T) {
	svc, repo, competencias := newFuncionarioFixture()
	repo.add(&model.Funcionario{
		Matricula: "12345", CPF: "52998224725", Nome: "Maria Souza",
		LimiteMensal: decimal.RequireFromString("500.00"), Ativo: true,
	})
	for _, c := range competencias.competencias {
		c.Status = model.CompetenciaFechada
	}

	_, err := svc.BuscarComSaldo(context.Background(), "12345")
	assert.True(t, apierror.IsKind(err, apierror.KindNoOpenPeriod))
}

func TestBuscarComSaldoNaoEncontrado(t *testing.T) {
	svc, _, _ := newFuncionarioFixture()

	_, err := svc.BuscarComSaldo(context.Background(), "00000")
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
