package service

import (
	"context"
	"time"

	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Every Tx method receives nil because runTx
// skips the transaction when no *gorm.DB is available.

// ── Produtos ──────────────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos   map[uuid.UUID]*model.Produto
	categorias map[uuid.UUID]*model.Categoria
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{
		produtos:   make(map[uuid.UUID]*model.Produto),
		categorias: make(map[uuid.UUID]*model.Categoria),
	}
}

func (r *stubProdutoRepo) add(p *model.Produto) *model.Produto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return p
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.add(p)
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, error) {
	out := make([]model.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = false
	}
	return nil
}

func (r *stubProdutoRepo) CreateCategoria(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubProdutoRepo) FindCategoriaByID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubProdutoRepo) FindCategoriaByNome(_ context.Context, nome string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nome == nome {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProdutoRepo) ListCategorias(_ context.Context, _ bool) ([]model.Categoria, error) {
	out := make([]model.Categoria, 0, len(r.categorias))
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubProdutoRepo) UpdateCategoria(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubProdutoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProdutoRepo) DeduzirEstoqueCondicionalTx(_ *gorm.DB, id uuid.UUID, qtd int) (bool, error) {
	p, ok := r.produtos[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if p.EstoqueAtual < qtd {
		return false, nil
	}
	p.EstoqueAtual -= qtd
	return true, nil
}

func (r *stubProdutoRepo) AjustarEstoqueTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.EstoqueAtual += delta
	return nil
}

func (r *stubProdutoRepo) DefinirEstoqueTx(_ *gorm.DB, id uuid.UUID, novo int) error {
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.EstoqueAtual = novo
	return nil
}

func (r *stubProdutoRepo) ListAbaixoMinimo(_ context.Context) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.Ativo && p.ControlarEstoque && p.EstoqueAtual <= p.EstoqueMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProdutoRepo) CountEstoque(_ context.Context) (total, abaixo, zerados int64, err error) {
	for _, p := range r.produtos {
		if !p.Ativo || !p.ControlarEstoque {
			continue
		}
		total++
		if p.EstoqueAtual <= p.EstoqueMinimo {
			abaixo++
		}
		if p.EstoqueAtual == 0 {
			zerados++
		}
	}
	return total, abaixo, zerados, nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// ── Movimentos de estoque ─────────────────────────────────────────────────────

type stubEstoqueRepo struct {
	movimentos []model.MovimentoEstoque
}

func (r *stubEstoqueRepo) CreateMovimentoTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubEstoqueRepo) ListMovimentos(_ context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if filter.ProdutoID != "" && m.ProdutoID.String() != filter.ProdutoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

var _ repository.EstoqueRepository = (*stubEstoqueRepo)(nil)

// ── Pedidos ───────────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
	seq     map[string]int
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{
		pedidos: make(map[uuid.UUID]*model.Pedido),
		seq:     make(map[string]int),
	}
}

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.pedidos[p.ID] = &cp
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPedidoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r *stubPedidoRepo) NextNumeroTx(_ *gorm.DB, data string) (int, error) {
	r.seq[data]++
	return r.seq[data], nil
}

func (r *stubPedidoRepo) ListCozinha(_ context.Context) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		switch p.Status {
		case model.PedidoPendente, model.PedidoPreparando, model.PedidoPronto:
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) ResumoDia(_ context.Context, _ time.Time) (*dto.PedidoResumoDia, error) {
	resumo := &dto.PedidoResumoDia{PorStatus: make(map[string]int64)}
	for _, p := range r.pedidos {
		resumo.TotalPedidos++
		resumo.PorStatus[p.Status]++
		if p.Status != model.PedidoCancelado {
			resumo.ValorTotal = resumo.ValorTotal.Add(p.ValorTotal)
		}
	}
	return resumo, nil
}

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── Competências / consumos ───────────────────────────────────────────────────

type consumoKey struct {
	funcionario uuid.UUID
	competencia uuid.UUID
}

type stubCompetenciaRepo struct {
	competencias map[uuid.UUID]*model.Competencia
	consumos     map[consumoKey]*model.ConsumoMensal
}

func newStubCompetenciaRepo() *stubCompetenciaRepo {
	return &stubCompetenciaRepo{
		competencias: make(map[uuid.UUID]*model.Competencia),
		consumos:     make(map[consumoKey]*model.ConsumoMensal),
	}
}

func (r *stubCompetenciaRepo) add(c *model.Competencia) *model.Competencia {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.competencias[c.ID] = c
	return c
}

func (r *stubCompetenciaRepo) Create(_ context.Context, c *model.Competencia) error {
	r.add(c)
	return nil
}

func (r *stubCompetenciaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Competencia, error) {
	c, ok := r.competencias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompetenciaRepo) FindByAnoMes(_ context.Context, ano, mes int) (*model.Competencia, error) {
	for _, c := range r.competencias {
		if c.Ano == ano && c.Mes == mes {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompetenciaRepo) FindAberta(_ context.Context) (*model.Competencia, error) {
	for _, c := range r.competencias {
		if c.Status == model.CompetenciaAberta {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompetenciaRepo) FindUltima(_ context.Context) (*model.Competencia, error) {
	var ultima *model.Competencia
	for _, c := range r.competencias {
		if ultima == nil || c.Ano > ultima.Ano || (c.Ano == ultima.Ano && c.Mes > ultima.Mes) {
			ultima = c
		}
	}
	if ultima == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return ultima, nil
}

func (r *stubCompetenciaRepo) List(_ context.Context) ([]model.Competencia, error) {
	out := make([]model.Competencia, 0, len(r.competencias))
	for _, c := range r.competencias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCompetenciaRepo) Update(_ context.Context, c *model.Competencia) error {
	r.competencias[c.ID] = c
	return nil
}

func (r *stubCompetenciaRepo) CreateTx(_ *gorm.DB, c *model.Competencia) error {
	r.add(c)
	return nil
}

func (r *stubCompetenciaRepo) UpdateTx(_ *gorm.DB, c *model.Competencia) error {
	r.competencias[c.ID] = c
	return nil
}

func (r *stubCompetenciaRepo) FindByAnoMesTx(_ *gorm.DB, ano, mes int) (*model.Competencia, error) {
	return r.FindByAnoMes(context.Background(), ano, mes)
}

func (r *stubCompetenciaRepo) ListConsumos(_ context.Context, competenciaID uuid.UUID) ([]model.ConsumoMensal, error) {
	var out []model.ConsumoMensal
	for _, c := range r.consumos {
		if c.CompetenciaID == competenciaID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCompetenciaRepo) FindConsumo(_ context.Context, funcionarioID, competenciaID uuid.UUID) (*model.ConsumoMensal, error) {
	c, ok := r.consumos[consumoKey{funcionarioID, competenciaID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompetenciaRepo) ListConsumosByFuncionario(_ context.Context, funcionarioID uuid.UUID) ([]model.ConsumoMensal, error) {
	var out []model.ConsumoMensal
	for _, c := range r.consumos {
		if c.FuncionarioID == funcionarioID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCompetenciaRepo) FindConsumoForUpdateTx(_ *gorm.DB, funcionarioID, competenciaID uuid.UUID) (*model.ConsumoMensal, error) {
	key := consumoKey{funcionarioID, competenciaID}
	if c, ok := r.consumos[key]; ok {
		return c, nil
	}
	c := &model.ConsumoMensal{
		ID:            uuid.New(),
		FuncionarioID: funcionarioID,
		CompetenciaID: competenciaID,
		ValorTotal:    decimal.Zero,
	}
	r.consumos[key] = c
	return c, nil
}

func (r *stubCompetenciaRepo) UpdateConsumoTx(_ *gorm.DB, c *model.ConsumoMensal) error {
	r.consumos[consumoKey{c.FuncionarioID, c.CompetenciaID}] = c
	return nil
}

var _ repository.CompetenciaRepository = (*stubCompetenciaRepo)(nil)

// ── Funcionários ──────────────────────────────────────────────────────────────

type stubFuncionarioRepo struct {
	funcionarios map[uuid.UUID]*model.Funcionario
	setores      map[uuid.UUID]*model.Setor
}

func newStubFuncionarioRepo() *stubFuncionarioRepo {
	return &stubFuncionarioRepo{
		funcionarios: make(map[uuid.UUID]*model.Funcionario),
		setores:      make(map[uuid.UUID]*model.Setor),
	}
}

func (r *stubFuncionarioRepo) add(f *model.Funcionario) *model.Funcionario {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.funcionarios[f.ID] = f
	return f
}

func (r *stubFuncionarioRepo) Create(_ context.Context, f *model.Funcionario) error {
	r.add(f)
	return nil
}

func (r *stubFuncionarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Funcionario, error) {
	f, ok := r.funcionarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubFuncionarioRepo) FindByMatricula(_ context.Context, matricula string) (*model.Funcionario, error) {
	for _, f := range r.funcionarios {
		if f.Matricula == matricula {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFuncionarioRepo) FindByCPF(_ context.Context, cpf string) (*model.Funcionario, error) {
	for _, f := range r.funcionarios {
		if f.CPF == cpf {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFuncionarioRepo) List(_ context.Context, _ dto.FuncionarioFilter) ([]model.Funcionario, error) {
	out := make([]model.Funcionario, 0, len(r.funcionarios))
	for _, f := range r.funcionarios {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFuncionarioRepo) Update(_ context.Context, f *model.Funcionario) error {
	r.funcionarios[f.ID] = f
	return nil
}

func (r *stubFuncionarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if f, ok := r.funcionarios[id]; ok {
		f.Ativo = false
	}
	return nil
}

func (r *stubFuncionarioRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Funcionario, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubFuncionarioRepo) CreateSetor(_ context.Context, s *model.Setor) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.setores[s.ID] = s
	return nil
}

func (r *stubFuncionarioRepo) FindSetorByID(_ context.Context, id uuid.UUID) (*model.Setor, error) {
	s, ok := r.setores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubFuncionarioRepo) ListSetores(_ context.Context, _ bool) ([]model.Setor, error) {
	out := make([]model.Setor, 0, len(r.setores))
	for _, s := range r.setores {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubFuncionarioRepo) UpdateSetor(_ context.Context, s *model.Setor) error {
	r.setores[s.ID] = s
	return nil
}

var _ repository.FuncionarioRepository = (*stubFuncionarioRepo)(nil)

// ── Caixa ─────────────────────────────────────────────────────────────────────

type stubCaixaRepo struct {
	caixas     map[uuid.UUID]*model.Caixa
	transacoes []model.TransacaoCaixa
}

func newStubCaixaRepo() *stubCaixaRepo {
	return &stubCaixaRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func (r *stubCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.caixas[c.ID] = c
	return nil
}

func (r *stubCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCaixaRepo) FindByData(_ context.Context, data time.Time) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.Data.Format("2006-01-02") == data.Format("2006-01-02") {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) FindAbertoByData(ctx context.Context, data time.Time) (*model.Caixa, error) {
	c, err := r.FindByData(ctx, data)
	if err != nil || c.Status != model.CaixaAberto {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCaixaRepo) Update(_ context.Context, c *model.Caixa) error {
	r.caixas[c.ID] = c
	return nil
}

func (r *stubCaixaRepo) ListPeriodo(_ context.Context, inicio, fim time.Time) ([]model.Caixa, error) {
	var out []model.Caixa
	for _, c := range r.caixas {
		if !c.Data.Before(inicio) && !c.Data.After(fim) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCaixaRepo) CreateTransacao(_ context.Context, t *model.TransacaoCaixa) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transacoes = append(r.transacoes, *t)
	return nil
}

func (r *stubCaixaRepo) CreateTransacaoTx(_ *gorm.DB, t *model.TransacaoCaixa) error {
	return r.CreateTransacao(context.Background(), t)
}

func (r *stubCaixaRepo) ListTransacoes(_ context.Context, caixaID uuid.UUID) ([]model.TransacaoCaixa, error) {
	var out []model.TransacaoCaixa
	for _, t := range r.transacoes {
		if t.CaixaID == caixaID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubCaixaRepo) SumTransacoes(_ context.Context, caixaID uuid.UUID, tipo, formaPagamento string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.transacoes {
		if t.CaixaID != caixaID || t.Tipo != tipo {
			continue
		}
		if formaPagamento != "" && (t.FormaPagamento == nil || *t.FormaPagamento != formaPagamento) {
			continue
		}
		sum = sum.Add(t.Valor)
	}
	return sum, nil
}

var _ repository.CaixaRepository = (*stubCaixaRepo)(nil)

// ── Usuários ──────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Audit ─────────────────────────────────────────────────────────────────────

type stubAuditRepo struct {
	entries []model.AuditLog
}

func (r *stubAuditRepo) Create(_ context.Context, a *model.AuditLog) error {
	r.entries = append(r.entries, *a)
	return nil
}

func (r *stubAuditRepo) CreateTx(_ *gorm.DB, a *model.AuditLog) error {
	return r.Create(context.Background(), a)
}

func (r *stubAuditRepo) ListByTabela(_ context.Context, tabela string, _ int) ([]model.AuditLog, error) {
	var out []model.AuditLog
	for _, e := range r.entries {
		if e.Tabela == tabela {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.AuditRepository = (*stubAuditRepo)(nil)
