package service

import (
	"context"
	"fmt"
	"time"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CaixaService manages the daily cash register. One register per calendar
// date, ever — a closed register stays closed, and its ledger of transactions
// is append-only.
type CaixaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaAbrirRequest) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaFecharRequest) (*dto.CaixaResponse, error)
	Resumo(ctx context.Context) (*dto.CaixaResumoResponse, error)
	Sangria(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaMovimentoRequest) (*dto.TransacaoCaixaResponse, error)
	Suprimento(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaMovimentoRequest) (*dto.TransacaoCaixaResponse, error)
	Transacoes(ctx context.Context, caixaID uuid.UUID) ([]dto.TransacaoCaixaResponse, error)
	Historico(ctx context.Context, filter dto.CaixaRelatorioFilter) ([]dto.CaixaResponse, error)
	Relatorio(ctx context.Context, filter dto.CaixaRelatorioFilter) (*dto.CaixaRelatorioResponse, error)

	// RegistrarVenda appends the VENDA ledger entry for a non-convênio order.
	// Fails with NoOpenRegister when today's register is not open.
	RegistrarVenda(ctx context.Context, pedido *model.Pedido) error

	// RegistrarEstornoVenda appends the inverse VENDA entry for a cancelled
	// order. The original entry is never touched.
	RegistrarEstornoVenda(ctx context.Context, pedido *model.Pedido) error
}

type caixaService struct {
	repo repository.CaixaRepository
}

func NewCaixaService(repo repository.CaixaRepository) CaixaService {
	return &caixaService{repo: repo}
}

func (s *caixaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaAbrirRequest) (*dto.CaixaResponse, error) {
	hoje := hojeData()
	if existente, err := s.repo.FindByData(ctx, hoje); err == nil {
		if existente.Status == model.CaixaAberto {
			return nil, apierror.AlreadyExists("Já existe caixa aberto para hoje")
		}
		return nil, apierror.AlreadyExists("Caixa de hoje já foi fechado e não pode ser reaberto")
	}

	caixa := model.Caixa{
		Data:              hoje,
		ValorAbertura:     req.ValorAbertura,
		UsuarioAberturaID: &usuarioID,
		AbertoEm:          time.Now(),
		Status:            model.CaixaAberto,
		Observacoes:       req.Observacoes,
	}
	if err := s.repo.Create(ctx, &caixa); err != nil {
		return nil, err
	}

	// Opening float is itself a ledger entry so the transaction list alone
	// reconstructs the drawer.
	if req.ValorAbertura.IsPositive() {
		troco := model.TransacaoCaixa{
			CaixaID:   caixa.ID,
			Tipo:      model.TransacaoTroco,
			Valor:     req.ValorAbertura,
			Descricao: "Troco inicial",
			UsuarioID: &usuarioID,
		}
		if err := s.repo.CreateTransacao(ctx, &troco); err != nil {
			return nil, err
		}
	}

	resp := dto.CaixaToResponse(&caixa)
	return &resp, nil
}

// Fechar computes the expected cash amount from the ledger and stores the
// counted value plus the difference. esperado = abertura + vendas em dinheiro
// + suprimentos − sangrias. Closed is final.
func (s *caixaService) Fechar(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaFecharRequest) (*dto.CaixaResponse, error) {
	caixa, err := s.aberto(ctx)
	if err != nil {
		return nil, err
	}

	esperado, err := s.dinheiroEsperado(ctx, caixa)
	if err != nil {
		return nil, err
	}
	diferenca := req.ValorFechamento.Sub(esperado)
	agora := time.Now()

	caixa.ValorFechamento = &req.ValorFechamento
	caixa.ValorEsperado = &esperado
	caixa.Diferenca = &diferenca
	caixa.UsuarioFechamentoID = &usuarioID
	caixa.FechadoEm = &agora
	caixa.Status = model.CaixaFechado
	if req.Observacoes != nil {
		caixa.Observacoes = req.Observacoes
	}
	if err := s.repo.Update(ctx, caixa); err != nil {
		return nil, err
	}

	resp := dto.CaixaToResponse(caixa)
	return &resp, nil
}

func (s *caixaService) Resumo(ctx context.Context) (*dto.CaixaResumoResponse, error) {
	caixa, err := s.aberto(ctx)
	if err != nil {
		return nil, err
	}

	vendasPorForma := make(map[string]decimal.Decimal, 4)
	totalVendas := decimal.Zero
	for _, forma := range []string{model.PagamentoDinheiro, model.PagamentoPix, model.PagamentoCartao, model.PagamentoConvenio} {
		v, err := s.repo.SumTransacoes(ctx, caixa.ID, model.TransacaoVenda, forma)
		if err != nil {
			return nil, err
		}
		vendasPorForma[forma] = v
		totalVendas = totalVendas.Add(v)
	}
	sangrias, err := s.repo.SumTransacoes(ctx, caixa.ID, model.TransacaoSangria, "")
	if err != nil {
		return nil, err
	}
	suprimentos, err := s.repo.SumTransacoes(ctx, caixa.ID, model.TransacaoSuprimento, "")
	if err != nil {
		return nil, err
	}
	esperado := caixa.ValorAbertura.
		Add(vendasPorForma[model.PagamentoDinheiro]).
		Add(suprimentos).
		Sub(sangrias)

	return &dto.CaixaResumoResponse{
		Caixa:            dto.CaixaToResponse(caixa),
		VendasPorForma:   vendasPorForma,
		TotalVendas:      totalVendas,
		TotalSangrias:    sangrias,
		TotalSuprimentos: suprimentos,
		DinheiroEsperado: esperado,
	}, nil
}

func (s *caixaService) Sangria(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaMovimentoRequest) (*dto.TransacaoCaixaResponse, error) {
	caixa, err := s.aberto(ctx)
	if err != nil {
		return nil, err
	}
	esperado, err := s.dinheiroEsperado(ctx, caixa)
	if err != nil {
		return nil, err
	}
	if req.Valor.GreaterThan(esperado) {
		return nil, apierror.InvalidArgument(fmt.Sprintf(
			"Sangria maior que o dinheiro em caixa (R$ %s)", esperado.StringFixed(2)))
	}
	return s.movimento(ctx, caixa, usuarioID, model.TransacaoSangria, req)
}

func (s *caixaService) Suprimento(ctx context.Context, usuarioID uuid.UUID, req dto.CaixaMovimentoRequest) (*dto.TransacaoCaixaResponse, error) {
	caixa, err := s.aberto(ctx)
	if err != nil {
		return nil, err
	}
	return s.movimento(ctx, caixa, usuarioID, model.TransacaoSuprimento, req)
}

func (s *caixaService) Transacoes(ctx context.Context, caixaID uuid.UUID) ([]dto.TransacaoCaixaResponse, error) {
	if _, err := s.repo.FindByID(ctx, caixaID); err != nil {
		return nil, apierror.NotFound("Caixa não encontrado")
	}
	transacoes, err := s.repo.ListTransacoes(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransacaoCaixaResponse, 0, len(transacoes))
	for i := range transacoes {
		out = append(out, dto.TransacaoToResponse(&transacoes[i]))
	}
	return out, nil
}

// Historico lists the registers of a period, closed ones included, without
// the per-register aggregation Relatorio does.
func (s *caixaService) Historico(ctx context.Context, filter dto.CaixaRelatorioFilter) ([]dto.CaixaResponse, error) {
	inicio, fim, err := periodoDe(filter)
	if err != nil {
		return nil, err
	}
	caixas, err := s.repo.ListPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CaixaResponse, 0, len(caixas))
	for i := range caixas {
		out = append(out, dto.CaixaToResponse(&caixas[i]))
	}
	return out, nil
}

func (s *caixaService) Relatorio(ctx context.Context, filter dto.CaixaRelatorioFilter) (*dto.CaixaRelatorioResponse, error) {
	inicio, fim, err := periodoDe(filter)
	if err != nil {
		return nil, err
	}

	caixas, err := s.repo.ListPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}

	resp := &dto.CaixaRelatorioResponse{
		Periodo: fmt.Sprintf("%s a %s", filter.DataInicio, filter.DataFim),
		Caixas:  make([]dto.CaixaResponse, 0, len(caixas)),
	}
	for i := range caixas {
		c := &caixas[i]
		resp.Caixas = append(resp.Caixas, dto.CaixaToResponse(c))
		resp.TotalAberturas = resp.TotalAberturas.Add(c.ValorAbertura)
		if c.Diferenca != nil {
			resp.TotalDiferenca = resp.TotalDiferenca.Add(*c.Diferenca)
		}
		vendas, err := s.repo.SumTransacoes(ctx, c.ID, model.TransacaoVenda, "")
		if err != nil {
			return nil, err
		}
		resp.TotalVendas = resp.TotalVendas.Add(vendas)
	}
	return resp, nil
}

func (s *caixaService) RegistrarVenda(ctx context.Context, pedido *model.Pedido) error {
	caixa, err := s.aberto(ctx)
	if err != nil {
		return err
	}
	forma := pedido.FormaPagamento
	t := model.TransacaoCaixa{
		CaixaID:        caixa.ID,
		Tipo:           model.TransacaoVenda,
		Valor:          pedido.ValorTotal,
		FormaPagamento: &forma,
		PedidoID:       &pedido.ID,
		Descricao:      fmt.Sprintf("Pedido %s", pedido.Numero),
		UsuarioID:      &pedido.UsuarioID,
	}
	return s.repo.CreateTransacao(ctx, &t)
}

func (s *caixaService) RegistrarEstornoVenda(ctx context.Context, pedido *model.Pedido) error {
	caixa, err := s.aberto(ctx)
	if err != nil {
		return err
	}
	forma := pedido.FormaPagamento
	t := model.TransacaoCaixa{
		CaixaID:        caixa.ID,
		Tipo:           model.TransacaoVenda,
		Valor:          pedido.ValorTotal.Neg(),
		FormaPagamento: &forma,
		PedidoID:       &pedido.ID,
		Descricao:      fmt.Sprintf("Estorno pedido %s", pedido.Numero),
		UsuarioID:      &pedido.UsuarioID,
	}
	return s.repo.CreateTransacao(ctx, &t)
}

func (s *caixaService) movimento(ctx context.Context, caixa *model.Caixa, usuarioID uuid.UUID, tipo string, req dto.CaixaMovimentoRequest) (*dto.TransacaoCaixaResponse, error) {
	t := model.TransacaoCaixa{
		CaixaID:   caixa.ID,
		Tipo:      tipo,
		Valor:     req.Valor,
		Descricao: req.Descricao,
		UsuarioID: &usuarioID,
	}
	if err := s.repo.CreateTransacao(ctx, &t); err != nil {
		return nil, err
	}
	resp := dto.TransacaoToResponse(&t)
	return &resp, nil
}

// dinheiroEsperado computes the single source of truth for the drawer:
// abertura + vendas em dinheiro + suprimentos − sangrias. Used by both the
// live summary and the close, so the two can never disagree.
func (s *caixaService) dinheiroEsperado(ctx context.Context, caixa *model.Caixa) (decimal.Decimal, error) {
	vendasDinheiro, err := s.repo.SumTransacoes(ctx, caixa.ID, model.TransacaoVenda, model.PagamentoDinheiro)
	if err != nil {
		return decimal.Zero, err
	}
	sangrias, err := s.repo.SumTransacoes(ctx, caixa.ID, model.TransacaoSangria, "")
	if err != nil {
		return decimal.Zero, err
	}
	suprimentos, err := s.repo.SumTransacoes(ctx, caixa.ID, model.TransacaoSuprimento, "")
	if err != nil {
		return decimal.Zero, err
	}
	return caixa.ValorAbertura.Add(vendasDinheiro).Add(suprimentos).Sub(sangrias), nil
}

func (s *caixaService) aberto(ctx context.Context) (*model.Caixa, error) {
	caixa, err := s.repo.FindAbertoByData(ctx, hojeData())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierror.NoOpenRegister("Nenhum caixa aberto hoje")
		}
		return nil, err
	}
	return caixa, nil
}

func periodoDe(filter dto.CaixaRelatorioFilter) (time.Time, time.Time, error) {
	inicio, err := time.Parse("2006-01-02", filter.DataInicio)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.InvalidArgument("data_inicio inválida, use YYYY-MM-DD")
	}
	fim, err := time.Parse("2006-01-02", filter.DataFim)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.InvalidArgument("data_fim inválida, use YYYY-MM-DD")
	}
	if fim.Before(inicio) {
		return time.Time{}, time.Time{}, apierror.InvalidArgument("data_fim anterior a data_inicio")
	}
	return inicio, fim, nil
}

func hojeData() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
