package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoService interface {
	Criar(ctx context.Context, usuarioID uuid.UUID, req dto.PedidoCreateRequest) (*dto.PedidoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	AtualizarStatus(ctx context.Context, id, usuarioID uuid.UUID, status string) (*dto.PedidoResponse, error)
	Cancelar(ctx context.Context, id, usuarioID uuid.UUID) (*dto.PedidoResponse, error)
	Cozinha(ctx context.Context) ([]dto.PedidoResponse, error)
	ResumoHoje(ctx context.Context) (*dto.PedidoResumoDia, error)
}

type pedidoService struct {
	repo            repository.PedidoRepository
	produtoRepo     repository.ProdutoRepository
	funcionarioRepo repository.FuncionarioRepository
	competenciaRepo repository.CompetenciaRepository
	auditRepo       repository.AuditRepository
	estoque         EstoqueService
	consumo         ConsumoService
	caixa           CaixaService
}

func NewPedidoService(
	repo repository.PedidoRepository,
	produtoRepo repository.ProdutoRepository,
	funcionarioRepo repository.FuncionarioRepository,
	competenciaRepo repository.CompetenciaRepository,
	auditRepo repository.AuditRepository,
	estoque EstoqueService,
	consumo ConsumoService,
	caixa CaixaService,
) PedidoService {
	return &pedidoService{
		repo:            repo,
		produtoRepo:     produtoRepo,
		funcionarioRepo: funcionarioRepo,
		competenciaRepo: competenciaRepo,
		auditRepo:       auditRepo,
		estoque:         estoque,
		consumo:         consumo,
		caixa:           caixa,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with stub repositories).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// transicoesPedido maps each status to the set it may move to. ENTREGUE and
// CANCELADO map to nothing.
var transicoesPedido = map[string][]string{
	model.PedidoPendente:   {model.PedidoPreparando, model.PedidoPronto, model.PedidoEntregue, model.PedidoCancelado},
	model.PedidoPreparando: {model.PedidoPronto, model.PedidoEntregue, model.PedidoCancelado},
	model.PedidoPronto:     {model.PedidoEntregue, model.PedidoCancelado},
}

func transicaoValida(de, para string) bool {
	for _, s := range transicoesPedido[de] {
		if s == para {
			return true
		}
	}
	return false
}

// Criar runs the full order workflow in one ACID transaction:
//  1. validate client / payment combination
//  2. resolve the open competência
//  3. resolve products and snapshot prices
//  4. BEGIN TX: next numero, create pedido+itens, deduct stock
//     conditionally, charge convênio under row lock
//  5. COMMIT, then best-effort: cash register entry and low-stock alerts
func (s *pedidoService) Criar(ctx context.Context, usuarioID uuid.UUID, req dto.PedidoCreateRequest) (*dto.PedidoResponse, error) {
	var funcionario *model.Funcionario

	switch req.TipoCliente {
	case model.ClienteFuncionario:
		var f *model.Funcionario
		var err error
		switch {
		case req.FuncionarioID != nil:
			f, err = s.funcionarioRepo.FindByID(ctx, *req.FuncionarioID)
		case req.Matricula != nil && *req.Matricula != "":
			f, err = s.funcionarioRepo.FindByMatricula(ctx, *req.Matricula)
		default:
			return nil, apierror.InvalidArgument("Pedido de funcionário exige funcionario_id ou matricula")
		}
		if err != nil {
			return nil, apierror.NotFound("Funcionário não encontrado")
		}
		if !f.Ativo {
			return nil, apierror.Forbidden("Funcionário inativo não pode registrar pedidos")
		}
		// Employee orders always settle via payroll deduction, whatever the
		// caller sent.
		req.FormaPagamento = model.PagamentoConvenio
		funcionario = f
	case model.ClientePaciente:
		if req.FormaPagamento == model.PagamentoConvenio {
			return nil, apierror.InvalidArgument("Paciente não pode pagar com convênio")
		}
	default:
		return nil, apierror.InvalidArgument("Tipo de cliente inválido")
	}

	competencia, err := s.competenciaRepo.FindAberta(ctx)
	if err != nil {
		return nil, apierror.NoOpenPeriod("Nenhuma competência aberta")
	}

	// Pre-flight product resolution. Prices are snapshotted here; the stock
	// check itself happens inside the transaction via conditional update.
	type linha struct {
		produto  *model.Produto
		qtd      int
		subtotal decimal.Decimal
	}
	linhas := make([]linha, 0, len(req.Itens))
	total := decimal.Zero
	for _, item := range req.Itens {
		p, err := s.produtoRepo.FindByID(ctx, item.ProdutoID)
		if err != nil {
			return nil, apierror.NotFound(fmt.Sprintf("Produto %s não encontrado", item.ProdutoID))
		}
		if !p.Ativo {
			return nil, apierror.InvalidArgument(fmt.Sprintf("Produto %s está inativo", p.Nome))
		}
		subtotal := p.Preco.Mul(decimal.NewFromInt(int64(item.Quantidade)))
		total = total.Add(subtotal)
		linhas = append(linhas, linha{produto: p, qtd: item.Quantidade, subtotal: subtotal})
	}

	var pedido model.Pedido
	type alerta struct {
		produto *model.Produto
		novo    int
	}
	var alertas []alerta

	txErr := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		hoje := time.Now().Format("20060102")
		seq, err := s.repo.NextNumeroTx(tx, hoje)
		if err != nil {
			return err
		}

		pedido = model.Pedido{
			Numero:         fmt.Sprintf("%s%04d", hoje, seq),
			TipoCliente:    req.TipoCliente,
			UsuarioID:      usuarioID,
			ValorTotal:     total,
			Status:         model.PedidoPendente,
			FormaPagamento: req.FormaPagamento,
			CompetenciaID:  competencia.ID,
			Observacao:     req.Observacao,
		}
		if funcionario != nil {
			pedido.FuncionarioID = &funcionario.ID
		}
		for _, l := range linhas {
			pedido.Itens = append(pedido.Itens, model.ItemPedido{
				ProdutoID:     l.produto.ID,
				Quantidade:    l.qtd,
				PrecoUnitario: l.produto.Preco,
				Subtotal:      l.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &pedido); err != nil {
			return err
		}

		for _, l := range linhas {
			if !l.produto.ControlarEstoque {
				continue
			}
			if err := s.estoque.DeduzirParaVendaTx(tx, l.produto, l.qtd, pedido.Numero, usuarioID); err != nil {
				return err
			}
			if l.produto.EstoqueAtual-l.qtd <= l.produto.EstoqueMinimo {
				alertas = append(alertas, alerta{produto: l.produto, novo: l.produto.EstoqueAtual - l.qtd})
			}
		}

		if req.FormaPagamento == model.PagamentoConvenio {
			if err := s.consumo.CobrarTx(tx, funcionario, competencia.ID, total); err != nil {
				return err
			}
		}

		return s.audit(tx, usuarioID, "CREATE", pedido.ID, nil, &pedido)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Cash register entry — best-effort, outside the order transaction. An
	// order without a register entry is reconciled manually; an order lost to
	// a register error would be worse. Convênio sales are ledgered too; only
	// the expected-cash formula ignores them.
	if err := s.caixa.RegistrarVenda(ctx, &pedido); err != nil {
		log.Warn().Err(err).Str("pedido", pedido.Numero).Msg("venda não registrada no caixa")
	}

	for _, a := range alertas {
		s.estoque.NotificarBaixoEstoque(ctx, a.produto, a.novo)
	}

	return s.responder(ctx, pedido.ID, &pedido)
}

func (s *pedidoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Pedido não encontrado")
	}
	resp := dto.PedidoToResponse(p)
	return &resp, nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	resp := &dto.PedidoListResponse{Total: total, Page: page, PageSize: size}
	for i := range pedidos {
		resp.Pedidos = append(resp.Pedidos, dto.PedidoToResponse(&pedidos[i]))
	}
	return resp, nil
}

func (s *pedidoService) AtualizarStatus(ctx context.Context, id, usuarioID uuid.UUID, status string) (*dto.PedidoResponse, error) {
	if status == model.PedidoCancelado {
		return s.Cancelar(ctx, id, usuarioID)
	}

	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Pedido não encontrado")
	}
	if pedido.Terminal() {
		return nil, apierror.InvalidArgument(fmt.Sprintf("Pedido %s não admite mudança de status", pedido.Status))
	}
	if !transicaoValida(pedido.Status, status) {
		return nil, apierror.InvalidArgument(fmt.Sprintf("Transição de %s para %s não permitida", pedido.Status, status))
	}

	anterior := *pedido
	txErr := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusTx(tx, id, status); err != nil {
			return err
		}
		pedido.Status = status
		return s.audit(tx, usuarioID, "STATUS", id, &anterior, pedido)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.responder(ctx, id, pedido)
}

// Cancelar reverses everything the order did: restores stock of controlled
// products and refunds the convênio charge (floored at zero). Forbidden once
// the order's competência is closed — payroll already went out.
func (s *pedidoService) Cancelar(ctx context.Context, id, usuarioID uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Pedido não encontrado")
	}
	if pedido.Terminal() {
		return nil, apierror.BadRequest(fmt.Sprintf("Pedido %s não pode ser cancelado", pedido.Status))
	}

	// Closed periods are settled — no order of theirs may be undone, convênio
	// or not.
	competencia, err := s.competenciaRepo.FindByID(ctx, pedido.CompetenciaID)
	if err != nil {
		return nil, err
	}
	if competencia.Status == model.CompetenciaFechada {
		return nil, apierror.Forbidden("Pedido de competência fechada não pode ser cancelado")
	}

	anterior := *pedido
	txErr := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		for _, item := range pedido.Itens {
			if err := s.estoque.RestaurarParaVendaTx(tx, item.ProdutoID, item.Quantidade, pedido.Numero, usuarioID); err != nil {
				return err
			}
		}
		if pedido.FormaPagamento == model.PagamentoConvenio && pedido.FuncionarioID != nil {
			if err := s.consumo.EstornarTx(tx, *pedido.FuncionarioID, pedido.CompetenciaID, pedido.ValorTotal); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateStatusTx(tx, id, model.PedidoCancelado); err != nil {
			return err
		}
		pedido.Status = model.PedidoCancelado
		return s.audit(tx, usuarioID, "CANCEL", id, &anterior, pedido)
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.caixa.RegistrarEstornoVenda(ctx, pedido); err != nil {
		log.Warn().Err(err).Str("pedido", pedido.Numero).Msg("estorno não registrado no caixa")
	}

	return s.responder(ctx, id, pedido)
}

func (s *pedidoService) Cozinha(ctx context.Context) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListCozinha(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, dto.PedidoToResponse(&pedidos[i]))
	}
	return out, nil
}

func (s *pedidoService) ResumoHoje(ctx context.Context) (*dto.PedidoResumoDia, error) {
	return s.repo.ResumoDia(ctx, time.Now())
}

// responder reloads the order with associations; on stub repositories the
// reload may fail, so the in-memory copy is the fallback.
func (s *pedidoService) responder(ctx context.Context, id uuid.UUID, fallback *model.Pedido) (*dto.PedidoResponse, error) {
	if p, err := s.repo.FindByID(ctx, id); err == nil {
		resp := dto.PedidoToResponse(p)
		return &resp, nil
	}
	resp := dto.PedidoToResponse(fallback)
	return &resp, nil
}

func (s *pedidoService) audit(tx *gorm.DB, usuarioID uuid.UUID, acao string, pedidoID uuid.UUID, antes, depois *model.Pedido) error {
	registro := pedidoID.String()
	entry := model.AuditLog{
		UsuarioID:  &usuarioID,
		Acao:       acao,
		Tabela:     "pedidos",
		RegistroID: &registro,
	}
	if antes != nil {
		if b, err := json.Marshal(antes); err == nil {
			entry.DadosAnteriores = b
		}
	}
	if depois != nil {
		if b, err := json.Marshal(depois); err == nil {
			entry.DadosNovos = b
		}
	}
	return s.auditRepo.CreateTx(tx, &entry)
}
