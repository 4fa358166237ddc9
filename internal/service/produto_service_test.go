package service

import (
	"context"
	"testing"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProdutoFixture() (ProdutoService, *stubProdutoRepo, uuid.UUID) {
	repo := newStubProdutoRepo()
	categoria := &model.Categoria{ID: uuid.New(), Nome: "Lanches", Ativo: true}
	repo.categorias[categoria.ID] = categoria
	return NewProdutoService(repo, nil), repo, categoria.ID
}

func TestCriarProduto(t *testing.T) {
	svc, repo, categoriaID := newProdutoFixture()

	resp, err := svc.Criar(context.Background(), dto.ProdutoCreateRequest{
		Nome:             "X-Salada",
		CategoriaID:      categoriaID,
		Preco:            decimal.RequireFromString("12.50"),
		ControlarEstoque: true,
		EstoqueAtual:     30,
		EstoqueMinimo:    5,
		EstoqueMaximo:    100,
	})
	require.NoError(t, err)
	assert.True(t, resp.Ativo)
	assert.Equal(t, 30, repo.produtos[resp.ID].EstoqueAtual)
}

func TestCriarProdutoCategoriaInexistente(t *testing.T) {
	svc, _, _ := newProdutoFixture()

	_, err := svc.Criar(context.Background(), dto.ProdutoCreateRequest{
		Nome:        "X-Salada",
		CategoriaID: uuid.New(),
		Preco:       decimal.RequireFromString("12.50"),
	})
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestCriarProdutoLimitesInvalidos(t *testing.T) {
	svc, _, categoriaID := newProdutoFixture()

	_, err := svc.Criar(context.Background(), dto.ProdutoCreateRequest{
		Nome:             "X-Salada",
		CategoriaID:      categoriaID,
		Preco:            decimal.RequireFromString("12.50"),
		ControlarEstoque: true,
		EstoqueMinimo:    50,
		EstoqueMaximo:    10,
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestDesativarProdutoMantemRegistro(t *testing.T) {
	svc, repo, categoriaID := newProdutoFixture()

	resp, err := svc.Criar(context.Background(), dto.ProdutoCreateRequest{
		Nome:        "X-Salada",
		CategoriaID: categoriaID,
		Preco:       decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Desativar(context.Background(), resp.ID))
	assert.False(t, repo.produtos[resp.ID].Ativo, "soft delete keeps the row")
}

func TestCategoriaDuplicada(t *testing.T) {
	svc, _, _ := newProdutoFixture()

	_, err := svc.CriarCategoria(context.Background(), dto.CategoriaRequest{Nome: "Bebidas"})
	require.NoError(t, err)

	_, err = svc.CriarCategoria(context.Background(), dto.CategoriaRequest{Nome: "Bebidas"})
	assert.True(t, apierror.IsKind(err, apierror.KindAlreadyExists))
}
