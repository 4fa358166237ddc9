package service

import (
	"context"
	"fmt"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"
	"github.com/XxProLuks/SisLanch/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EstoqueService owns every stock mutation. All writes go through here so the
// movement trail in movimentacoes_estoque stays complete: product rows are
// never updated directly by other services.
type EstoqueService interface {
	RegistrarEntrada(ctx context.Context, usuarioID uuid.UUID, req dto.EntradaEstoqueRequest) (*dto.MovimentoEstoqueResponse, error)
	RegistrarSaida(ctx context.Context, usuarioID uuid.UUID, req dto.SaidaEstoqueRequest) (*dto.MovimentoEstoqueResponse, error)
	AjustarInventario(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteEstoqueRequest) (*dto.MovimentoEstoqueResponse, error)
	AtualizarLimites(ctx context.Context, produtoID uuid.UUID, req dto.LimitesEstoqueRequest) (*dto.ProdutoResponse, error)
	ListarMovimentos(ctx context.Context, filter dto.MovimentoFilter) ([]dto.MovimentoEstoqueResponse, error)
	Alertas(ctx context.Context) ([]dto.ProdutoResponse, error)
	Resumo(ctx context.Context) (*dto.EstoqueResumoResponse, error)

	// DeduzirParaVendaTx deducts stock for one sold line inside the order
	// transaction. The deduction is conditional (estoque_atual >= qtd) so two
	// concurrent orders can never drive stock negative.
	DeduzirParaVendaTx(tx *gorm.DB, produto *model.Produto, qtd int, pedidoNumero string, usuarioID uuid.UUID) error

	// RestaurarParaVendaTx returns stock on order cancellation, recording an
	// ESTORNO movement.
	RestaurarParaVendaTx(tx *gorm.DB, produtoID uuid.UUID, qtd int, pedidoNumero string, usuarioID uuid.UUID) error

	// NotificarBaixoEstoque enqueues a low-stock alert job. Best-effort: a
	// Redis hiccup must not fail the operation that triggered it.
	NotificarBaixoEstoque(ctx context.Context, p *model.Produto, estoqueAtual int)
}

type estoqueService struct {
	produtoRepo repository.ProdutoRepository
	estoqueRepo repository.EstoqueRepository
	dispatcher  *worker.Dispatcher
}

func NewEstoqueService(produtoRepo repository.ProdutoRepository, estoqueRepo repository.EstoqueRepository, dispatcher *worker.Dispatcher) EstoqueService {
	return &estoqueService{produtoRepo: produtoRepo, estoqueRepo: estoqueRepo, dispatcher: dispatcher}
}

func (s *estoqueService) RegistrarEntrada(ctx context.Context, usuarioID uuid.UUID, req dto.EntradaEstoqueRequest) (*dto.MovimentoEstoqueResponse, error) {
	var mov model.MovimentoEstoque
	err := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.findControlado(ctx, tx, req.ProdutoID)
		if err != nil {
			return err
		}
		if err := s.produtoRepo.AjustarEstoqueTx(tx, p.ID, req.Quantidade); err != nil {
			return err
		}
		mov = model.MovimentoEstoque{
			ProdutoID:          p.ID,
			Tipo:               model.MovimentoEntrada,
			Quantidade:         req.Quantidade,
			QuantidadeAnterior: p.EstoqueAtual,
			QuantidadeNova:     p.EstoqueAtual + req.Quantidade,
			Motivo:             req.Motivo,
			Referencia:         req.Referencia,
			UsuarioID:          &usuarioID,
		}
		return s.estoqueRepo.CreateMovimentoTx(tx, &mov)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.MovimentoToResponse(&mov)
	return &resp, nil
}

func (s *estoqueService) RegistrarSaida(ctx context.Context, usuarioID uuid.UUID, req dto.SaidaEstoqueRequest) (*dto.MovimentoEstoqueResponse, error) {
	var mov model.MovimentoEstoque
	var alerta *model.Produto
	err := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.findControlado(ctx, tx, req.ProdutoID)
		if err != nil {
			return err
		}
		ok, err := s.produtoRepo.DeduzirEstoqueCondicionalTx(tx, p.ID, req.Quantidade)
		if err != nil {
			return err
		}
		if !ok {
			return apierror.InsufficientStock(fmt.Sprintf(
				"Estoque insuficiente para %s: disponível %d, solicitado %d",
				p.Nome, p.EstoqueAtual, req.Quantidade))
		}
		mov = model.MovimentoEstoque{
			ProdutoID:          p.ID,
			Tipo:               model.MovimentoSaida,
			Quantidade:         req.Quantidade,
			QuantidadeAnterior: p.EstoqueAtual,
			QuantidadeNova:     p.EstoqueAtual - req.Quantidade,
			Motivo:             req.Motivo,
			UsuarioID:          &usuarioID,
		}
		if mov.QuantidadeNova <= p.EstoqueMinimo {
			alerta = p
		}
		return s.estoqueRepo.CreateMovimentoTx(tx, &mov)
	})
	if err != nil {
		return nil, err
	}
	if alerta != nil {
		s.NotificarBaixoEstoque(ctx, alerta, mov.QuantidadeNova)
	}
	resp := dto.MovimentoToResponse(&mov)
	return &resp, nil
}

func (s *estoqueService) AjustarInventario(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteEstoqueRequest) (*dto.MovimentoEstoqueResponse, error) {
	var mov model.MovimentoEstoque
	err := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.findControlado(ctx, tx, req.ProdutoID)
		if err != nil {
			return err
		}
		if p.EstoqueAtual == req.QuantidadeNova {
			return apierror.NoOp("Quantidade informada é igual ao estoque atual")
		}
		if err := s.produtoRepo.DefinirEstoqueTx(tx, p.ID, req.QuantidadeNova); err != nil {
			return err
		}
		diff := req.QuantidadeNova - p.EstoqueAtual
		if diff < 0 {
			diff = -diff
		}
		mov = model.MovimentoEstoque{
			ProdutoID:          p.ID,
			Tipo:               model.MovimentoAjuste,
			Quantidade:         diff,
			QuantidadeAnterior: p.EstoqueAtual,
			QuantidadeNova:     req.QuantidadeNova,
			Motivo:             req.Motivo,
			UsuarioID:          &usuarioID,
		}
		return s.estoqueRepo.CreateMovimentoTx(tx, &mov)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.MovimentoToResponse(&mov)
	return &resp, nil
}

func (s *estoqueService) AtualizarLimites(ctx context.Context, produtoID uuid.UUID, req dto.LimitesEstoqueRequest) (*dto.ProdutoResponse, error) {
	if req.EstoqueMaximo > 0 && req.EstoqueMinimo > req.EstoqueMaximo {
		return nil, apierror.InvalidArgument("Estoque mínimo não pode ser maior que o máximo")
	}
	p, err := s.produtoRepo.FindByID(ctx, produtoID)
	if err != nil {
		return nil, apierror.NotFound("Produto não encontrado")
	}
	p.EstoqueMinimo = req.EstoqueMinimo
	p.EstoqueMaximo = req.EstoqueMaximo
	if err := s.produtoRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.ProdutoToResponse(p)
	return &resp, nil
}

func (s *estoqueService) ListarMovimentos(ctx context.Context, filter dto.MovimentoFilter) ([]dto.MovimentoEstoqueResponse, error) {
	movs, err := s.estoqueRepo.ListMovimentos(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoEstoqueResponse, 0, len(movs))
	for i := range movs {
		out = append(out, dto.MovimentoToResponse(&movs[i]))
	}
	return out, nil
}

func (s *estoqueService) Alertas(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.produtoRepo.ListAbaixoMinimo(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, dto.ProdutoToResponse(&produtos[i]))
	}
	return out, nil
}

func (s *estoqueService) Resumo(ctx context.Context) (*dto.EstoqueResumoResponse, error) {
	total, abaixo, zerados, err := s.produtoRepo.CountEstoque(ctx)
	if err != nil {
		return nil, err
	}
	alertas, err := s.Alertas(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.EstoqueResumoResponse{
		TotalProdutos:    total,
		AbaixoDoMinimo:   abaixo,
		Zerados:          zerados,
		ProdutosEmAlerta: alertas,
	}, nil
}

func (s *estoqueService) DeduzirParaVendaTx(tx *gorm.DB, produto *model.Produto, qtd int, pedidoNumero string, usuarioID uuid.UUID) error {
	ok, err := s.produtoRepo.DeduzirEstoqueCondicionalTx(tx, produto.ID, qtd)
	if err != nil {
		return err
	}
	if !ok {
		return apierror.InsufficientStock(fmt.Sprintf(
			"Estoque insuficiente para %s: disponível %d, solicitado %d",
			produto.Nome, produto.EstoqueAtual, qtd))
	}
	// The movement must record the row the decrement actually hit. The
	// snapshot taken before the transaction may be stale under concurrent
	// sales, so re-read inside the tx.
	atual, err := s.produtoRepo.FindByIDTx(tx, produto.ID)
	if err != nil {
		return err
	}
	ref := pedidoNumero
	mov := model.MovimentoEstoque{
		ProdutoID:          produto.ID,
		Tipo:               model.MovimentoVenda,
		Quantidade:         qtd,
		QuantidadeAnterior: atual.EstoqueAtual + qtd,
		QuantidadeNova:     atual.EstoqueAtual,
		Motivo:             fmt.Sprintf("Venda pedido %s", pedidoNumero),
		Referencia:         &ref,
		UsuarioID:          &usuarioID,
	}
	return s.estoqueRepo.CreateMovimentoTx(tx, &mov)
}

func (s *estoqueService) RestaurarParaVendaTx(tx *gorm.DB, produtoID uuid.UUID, qtd int, pedidoNumero string, usuarioID uuid.UUID) error {
	p, err := s.produtoRepo.FindByIDTx(tx, produtoID)
	if err != nil {
		return err
	}
	// Only stock-controlled products were deducted at sale time.
	if !p.ControlarEstoque {
		return nil
	}
	if err := s.produtoRepo.AjustarEstoqueTx(tx, produtoID, qtd); err != nil {
		return err
	}
	ref := pedidoNumero
	mov := model.MovimentoEstoque{
		ProdutoID:          produtoID,
		Tipo:               model.MovimentoEstorno,
		Quantidade:         qtd,
		QuantidadeAnterior: p.EstoqueAtual,
		QuantidadeNova:     p.EstoqueAtual + qtd,
		Motivo:             fmt.Sprintf("Cancelamento pedido %s", pedidoNumero),
		Referencia:         &ref,
		UsuarioID:          &usuarioID,
	}
	return s.estoqueRepo.CreateMovimentoTx(tx, &mov)
}

func (s *estoqueService) NotificarBaixoEstoque(ctx context.Context, p *model.Produto, atual int) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.EnqueueAlertaEstoque(ctx, worker.AlertaEstoquePayload{
		ProdutoID:     p.ID.String(),
		Produto:       p.Nome,
		EstoqueAtual:  atual,
		EstoqueMinimo: p.EstoqueMinimo,
	})
	if err != nil {
		log.Warn().Err(err).Str("produto", p.Nome).Msg("falha ao enfileirar alerta de estoque")
	}
}

// findControlado loads the product inside the tx and validates it is active
// and stock-controlled.
func (s *estoqueService) findControlado(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p *model.Produto
	var err error
	if tx != nil {
		p, err = s.produtoRepo.FindByIDTx(tx, id)
	} else {
		p, err = s.produtoRepo.FindByID(ctx, id)
	}
	if err != nil {
		return nil, apierror.NotFound("Produto não encontrado")
	}
	if !p.Ativo {
		return nil, apierror.InvalidArgument("Produto inativo")
	}
	if !p.ControlarEstoque {
		return nil, apierror.InvalidArgument("Produto não tem controle de estoque habilitado")
	}
	return p, nil
}
