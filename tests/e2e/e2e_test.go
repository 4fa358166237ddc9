//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   1. Full counter cycle: login → catalog → open caixa → paciente order →
//      stock deducted and caixa resumo updated
//   2. Convênio cycle: employee lookup with balance → convênio order →
//      balance reduced → cancellation restores it
//   3. Competência close creates the next month and exports the payroll CSV

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/XxProLuks/SisLanch/internal/config"
	"github.com/XxProLuks/SisLanch/internal/infra"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/router"
	"github.com/XxProLuks/SisLanch/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"

	"context"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("sislanch_test"),
		tcPostgres.WithUsername("sislanch"),
		tcPostgres.WithPassword("sislanch"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed the admin operator and the open competência.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin",
		NomeCompleto: "Admin E2E",
		PasswordHash: string(hash),
		Perfil:       model.PerfilAdmin,
		Ativo:        true,
	}).Error)

	agora := time.Now()
	require.NoError(t, db.Create(&model.Competencia{
		Ano:    agora.Year(),
		Mes:    int(agora.Month()),
		Status: model.CompetenciaAberta,
	}).Error)

	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin123"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token}
}

func (env *testEnv) criarProduto(t *testing.T, nome string, preco float64, estoque int) string {
	t.Helper()

	catResp := do(t, env.server, "POST", "/v1/categorias",
		jsonBody(t, map[string]any{"nome": "Categoria " + nome}), env.token)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, catResp, &cat)

	prodResp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{
			"nome":              nome,
			"categoria_id":      cat.ID,
			"preco":             preco,
			"controlar_estoque": true,
			"estoque_atual":     estoque,
			"estoque_minimo":    2,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloBalcaoPaciente(t *testing.T) {
	env := setupTestEnv(t)

	prodID := env.criarProduto(t, "X-Salada", 12.50, 20)

	caixaResp := do(t, env.server, "POST", "/v1/caixa/abrir",
		jsonBody(t, map[string]any{"valor_abertura": 100.0}), env.token)
	require.Equal(t, http.StatusCreated, caixaResp.StatusCode)

	pedidoResp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"tipo_cliente":    "PACIENTE",
			"forma_pagamento": "DINHEIRO",
			"itens":           []map[string]any{{"produto_id": prodID, "quantidade": 3}},
		}), env.token)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido struct {
		ID         string `json:"id"`
		Numero     string `json:"numero"`
		Status     string `json:"status"`
		ValorTotal string `json:"valor_total"`
	}
	decodeJSON(t, pedidoResp, &pedido)
	assert.Equal(t, "PENDENTE", pedido.Status)
	assert.Equal(t, time.Now().Format("20060102")+"0001", pedido.Numero)
	assert.Equal(t, "37.5", pedido.ValorTotal)

	// Stock went down.
	prodDetail := do(t, env.server, "GET", "/v1/produtos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodDetail.StatusCode)
	var prod struct {
		EstoqueAtual int `json:"estoque_atual"`
	}
	decodeJSON(t, prodDetail, &prod)
	assert.Equal(t, 17, prod.EstoqueAtual)

	// The register saw the cash sale.
	resumoResp := do(t, env.server, "GET", "/v1/caixa/resumo", nil, env.token)
	require.Equal(t, http.StatusOK, resumoResp.StatusCode)
	var resumo struct {
		DinheiroEsperado string `json:"dinheiro_esperado"`
	}
	decodeJSON(t, resumoResp, &resumo)
	assert.Equal(t, "137.5", resumo.DinheiroEsperado)
}

func TestE2E_CicloConvenioComCancelamento(t *testing.T) {
	env := setupTestEnv(t)

	prodID := env.criarProduto(t, "Prato Feito", 18.90, 50)

	funcResp := do(t, env.server, "POST", "/v1/funcionarios",
		jsonBody(t, map[string]any{
			"matricula": "12345",
			"cpf":       "529.982.247-25",
			"nome":      "Maria Souza",
		}), env.token)
	require.Equal(t, http.StatusCreated, funcResp.StatusCode)
	var funcionario struct {
		ID string `json:"id"`
	}
	decodeJSON(t, funcResp, &funcionario)

	// Counter lookup by matrícula shows the full allowance.
	saldoResp := do(t, env.server, "GET", "/v1/funcionarios/consulta/12345", nil, env.token)
	require.Equal(t, http.StatusOK, saldoResp.StatusCode)
	var saldo struct {
		SaldoDisponivel string `json:"saldo_disponivel"`
	}
	decodeJSON(t, saldoResp, &saldo)
	assert.Equal(t, "500", saldo.SaldoDisponivel)

	pedidoResp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"tipo_cliente":    "FUNCIONARIO",
			"funcionario_id":  funcionario.ID,
			"forma_pagamento": "CONVENIO",
			"itens":           []map[string]any{{"produto_id": prodID, "quantidade": 2}},
		}), env.token)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido struct {
		ID string `json:"id"`
	}
	decodeJSON(t, pedidoResp, &pedido)

	saldoResp = do(t, env.server, "GET", "/v1/funcionarios/consulta/12345", nil, env.token)
	decodeJSON(t, saldoResp, &saldo)
	assert.Equal(t, "462.2", saldo.SaldoDisponivel)

	// Cancellation refunds the allowance and restores stock.
	cancelResp := do(t, env.server, "DELETE", "/v1/pedidos/"+pedido.ID, nil, env.token)
	require.Equal(t, http.StatusOK, cancelResp.StatusCode)

	saldoResp = do(t, env.server, "GET", "/v1/funcionarios/consulta/12345", nil, env.token)
	decodeJSON(t, saldoResp, &saldo)
	assert.Equal(t, "500", saldo.SaldoDisponivel)

	prodDetail := do(t, env.server, "GET", "/v1/produtos/"+prodID, nil, env.token)
	var prod struct {
		EstoqueAtual int `json:"estoque_atual"`
	}
	decodeJSON(t, prodDetail, &prod)
	assert.Equal(t, 50, prod.EstoqueAtual)
}

func TestE2E_FecharCompetenciaExportaCSV(t *testing.T) {
	env := setupTestEnv(t)

	atualResp := do(t, env.server, "GET", "/v1/competencias/atual", nil, env.token)
	require.Equal(t, http.StatusOK, atualResp.StatusCode)
	var atual struct {
		ID  string `json:"id"`
		Ano int    `json:"ano"`
		Mes int    `json:"mes"`
	}
	decodeJSON(t, atualResp, &atual)

	fecharResp := do(t, env.server, "POST", fmt.Sprintf("/v1/competencias/%s/fechar", atual.ID), nil, env.token)
	require.Equal(t, http.StatusOK, fecharResp.StatusCode)
	var fechar struct {
		Fechada struct {
			Status string `json:"status"`
		} `json:"fechada"`
		Proxima struct {
			Status string `json:"status"`
		} `json:"proxima"`
	}
	decodeJSON(t, fecharResp, &fechar)
	assert.Equal(t, "FECHADA", fechar.Fechada.Status)
	assert.Equal(t, "ABERTA", fechar.Proxima.Status)

	exportResp := do(t, env.server, "GET", fmt.Sprintf("/v1/competencias/%s/export", atual.ID), nil, env.token)
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	body, err := io.ReadAll(exportResp.Body)
	require.NoError(t, err)
	exportResp.Body.Close()
	assert.True(t, strings.HasPrefix(string(body), "matricula;nome;setor;competencia;valor"))
	assert.Contains(t, exportResp.Header.Get("Content-Disposition"),
		fmt.Sprintf("convenio_%d%02d.csv", atual.Ano, atual.Mes))
}
