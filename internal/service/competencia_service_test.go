package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompetenciaFixture() (CompetenciaService, *stubCompetenciaRepo) {
	repo := newStubCompetenciaRepo()
	return NewCompetenciaService(repo, nil), repo
}

func TestCriarCompetenciaDerivaProximaDaUltima(t *testing.T) {
	svc, repo := newCompetenciaFixture()
	repo.add(&model.Competencia{Ano: 2026, Mes: 8, Status: model.CompetenciaAberta})

	// The caller picks nothing: the period is always next-of-latest.
	resp, err := svc.Criar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2026, resp.Ano)
	assert.Equal(t, 9, resp.Mes)

	resp, err = svc.Criar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Mes)
}

func TestCriarCompetenciaViraAno(t *testing.T) {
	svc, repo := newCompetenciaFixture()
	repo.add(&model.Competencia{Ano: 2026, Mes: 12, Status: model.CompetenciaFechada})

	resp, err := svc.Criar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2027, resp.Ano)
	assert.Equal(t, 1, resp.Mes)
}

func TestCriarPrimeiraCompetenciaUsaMesCorrente(t *testing.T) {
	svc, _ := newCompetenciaFixture()

	agora := time.Now()
	resp, err := svc.Criar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, agora.Year(), resp.Ano)
	assert.Equal(t, int(agora.Month()), resp.Mes)
}

func TestFecharCompetenciaCriaProxima(t *testing.T) {
	svc, repo := newCompetenciaFixture()
	c := repo.add(&model.Competencia{Ano: 2026, Mes: 8, Status: model.CompetenciaAberta})

	resp, err := svc.Fechar(context.Background(), c.ID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, model.CompetenciaFechada, resp.Fechada.Status)
	assert.NotNil(t, resp.Fechada.FechadaEm)
	assert.Equal(t, 2026, resp.Proxima.Ano)
	assert.Equal(t, 9, resp.Proxima.Mes)
	assert.Equal(t, model.CompetenciaAberta, resp.Proxima.Status)

	// Closing the already-closed period fails.
	_, err = svc.Fechar(context.Background(), c.ID, uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestFecharDezembroViraJaneiro(t *testing.T) {
	svc, repo := newCompetenciaFixture()
	c := repo.add(&model.Competencia{Ano: 2026, Mes: 12, Status: model.CompetenciaAberta})

	resp, err := svc.Fechar(context.Background(), c.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2027, resp.Proxima.Ano)
	assert.Equal(t, 1, resp.Proxima.Mes)
}

func TestFecharReaproveitaProximaExistente(t *testing.T) {
	svc, repo := newCompetenciaFixture()
	c := repo.add(&model.Competencia{Ano: 2026, Mes: 8, Status: model.CompetenciaAberta})
	jaExiste := repo.add(&model.Competencia{Ano: 2026, Mes: 9, Status: model.CompetenciaAberta})

	resp, err := svc.Fechar(context.Background(), c.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, jaExiste.ID, resp.Proxima.ID)
	assert.Len(t, repo.competencias, 2, "no duplicate period created")
}

func TestExportCSV(t *testing.T) {
	svc, repo := newCompetenciaFixture()
	c := repo.add(&model.Competencia{Ano: 2026, Mes: 8, Status: model.CompetenciaFechada})

	setor := &model.Setor{ID: uuid.New(), Nome: "Enfermagem"}
	f := &model.Funcionario{
		ID:           uuid.New(),
		Matricula:    "12345",
		Nome:         "Maria Souza",
		Setor:        setor,
		LimiteMensal: decimal.RequireFromString("500.00"),
	}
	repo.consumos[consumoKey{f.ID, c.ID}] = &model.ConsumoMensal{
		ID:            uuid.New(),
		FuncionarioID: f.ID,
		CompetenciaID: c.ID,
		ValorTotal:    decimal.RequireFromString("237.50"),
		Funcionario:   f,
		Competencia:   c,
	}

	content, filename, err := svc.ExportCSV(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "convenio_202608.csv", filename)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "matricula;nome;setor;competencia;valor", lines[0])
	assert.Equal(t, "12345;Maria Souza;Enfermagem;08/2026;237.50", lines[1])
}

func TestExportCSVCompetenciaInexistente(t *testing.T) {
	svc, _ := newCompetenciaFixture()

	_, _, err := svc.ExportCSV(context.Background(), uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
