package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyCatalogo = "cache:produtos:ativos"
	cacheTTLCatalogo = 5 * time.Minute
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.ProdutoCreateRequest) (*dto.ProdutoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ProdutoUpdateRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error

	CriarCategoria(ctx context.Context, req dto.CategoriaRequest) (*dto.CategoriaResponse, error)
	ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error)
	AtualizarCategoria(ctx context.Context, id uuid.UUID, req dto.CategoriaRequest) (*dto.CategoriaResponse, error)
}

// produtoService caches the unfiltered active catalog in Redis — it is hit on
// every counter screen refresh. Any product or category write invalidates it.
type produtoService struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, rdb: rdb}
}

func (s *produtoService) Criar(ctx context.Context, req dto.ProdutoCreateRequest) (*dto.ProdutoResponse, error) {
	if _, err := s.repo.FindCategoriaByID(ctx, req.CategoriaID); err != nil {
		return nil, apierror.NotFound("Categoria não encontrada")
	}
	if req.ControlarEstoque && req.EstoqueMaximo > 0 && req.EstoqueMinimo > req.EstoqueMaximo {
		return nil, apierror.InvalidArgument("Estoque mínimo não pode ser maior que o máximo")
	}

	p := model.Produto{
		Nome:             req.Nome,
		CategoriaID:      req.CategoriaID,
		Preco:            req.Preco,
		Ativo:            true,
		ControlarEstoque: req.ControlarEstoque,
		EstoqueAtual:     req.EstoqueAtual,
		EstoqueMinimo:    req.EstoqueMinimo,
		EstoqueMaximo:    req.EstoqueMaximo,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	resp := dto.ProdutoToResponse(&p)
	return &resp, nil
}

func (s *produtoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Produto não encontrado")
	}
	resp := dto.ProdutoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) ([]dto.ProdutoResponse, error) {
	cacheable := filter == (dto.ProdutoFilter{})

	if cacheable && s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKeyCatalogo).Bytes(); err == nil {
			var cached []dto.ProdutoResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	produtos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, dto.ProdutoToResponse(&produtos[i]))
	}

	if cacheable && s.rdb != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, cacheKeyCatalogo, raw, cacheTTLCatalogo).Err(); err != nil {
				log.Warn().Err(err).Msg("falha ao gravar cache de produtos")
			}
		}
	}
	return out, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ProdutoUpdateRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Produto não encontrado")
	}
	if req.Nome != nil {
		p.Nome = *req.Nome
	}
	if req.CategoriaID != nil {
		if _, err := s.repo.FindCategoriaByID(ctx, *req.CategoriaID); err != nil {
			return nil, apierror.NotFound("Categoria não encontrada")
		}
		p.CategoriaID = *req.CategoriaID
	}
	if req.Preco != nil {
		p.Preco = *req.Preco
	}
	if req.Ativo != nil {
		p.Ativo = *req.Ativo
	}
	if req.ControlarEstoque != nil {
		p.ControlarEstoque = *req.ControlarEstoque
	}
	if req.EstoqueMinimo != nil {
		p.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.EstoqueMaximo != nil {
		p.EstoqueMaximo = *req.EstoqueMaximo
	}
	if p.EstoqueMaximo > 0 && p.EstoqueMinimo > p.EstoqueMaximo {
		return nil, apierror.InvalidArgument("Estoque mínimo não pode ser maior que o máximo")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	resp := dto.ProdutoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Produto não encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

func (s *produtoService) CriarCategoria(ctx context.Context, req dto.CategoriaRequest) (*dto.CategoriaResponse, error) {
	if _, err := s.repo.FindCategoriaByNome(ctx, req.Nome); err == nil {
		return nil, apierror.AlreadyExists("Categoria já existe")
	}
	c := model.Categoria{Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
	if err := s.repo.CreateCategoria(ctx, &c); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	resp := dto.CategoriaToResponse(&c)
	return &resp, nil
}

func (s *produtoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.ListCategorias(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, dto.CategoriaToResponse(&categorias[i]))
	}
	return out, nil
}

func (s *produtoService) AtualizarCategoria(ctx context.Context, id uuid.UUID, req dto.CategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindCategoriaByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Categoria não encontrada")
	}
	c.Nome = req.Nome
	c.Descricao = req.Descricao
	if err := s.repo.UpdateCategoria(ctx, c); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	resp := dto.CategoriaToResponse(c)
	return &resp, nil
}

func (s *produtoService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKeyCatalogo).Err(); err != nil {
		log.Warn().Err(err).Msg("falha ao invalidar cache de produtos")
	}
}
