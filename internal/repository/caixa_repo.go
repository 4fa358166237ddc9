package repository

import (
	"context"
	"time"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	FindByData(ctx context.Context, data time.Time) (*model.Caixa, error)
	FindAbertoByData(ctx context.Context, data time.Time) (*model.Caixa, error)
	Update(ctx context.Context, c *model.Caixa) error
	ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Caixa, error)

	CreateTransacao(ctx context.Context, t *model.TransacaoCaixa) error
	CreateTransacaoTx(tx *gorm.DB, t *model.TransacaoCaixa) error
	ListTransacoes(ctx context.Context, caixaID uuid.UUID) ([]model.TransacaoCaixa, error)

	// SumTransacoes totals the given transaction type for a register; when
	// formaPagamento is non-empty only VENDA rows with that payment method
	// count.
	SumTransacoes(ctx context.Context, caixaID uuid.UUID, tipo, formaPagamento string) (decimal.Decimal, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *caixaRepo) FindByData(ctx context.Context, data time.Time) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("data = ?", data.Format("2006-01-02")).First(&c).Error
	return &c, err
}

func (r *caixaRepo) FindAbertoByData(ctx context.Context, data time.Time) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("data = ? AND status = ?", data.Format("2006-01-02"), model.CaixaAberto).
		First(&c).Error
	return &c, err
}

func (r *caixaRepo) Update(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *caixaRepo) ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Caixa, error) {
	var caixas []model.Caixa
	err := r.db.WithContext(ctx).
		Where("data >= ? AND data <= ?", inicio.Format("2006-01-02"), fim.Format("2006-01-02")).
		Order("data DESC").
		Find(&caixas).Error
	return caixas, err
}

func (r *caixaRepo) CreateTransacao(ctx context.Context, t *model.TransacaoCaixa) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *caixaRepo) CreateTransacaoTx(tx *gorm.DB, t *model.TransacaoCaixa) error {
	return tx.Create(t).Error
}

func (r *caixaRepo) ListTransacoes(ctx context.Context, caixaID uuid.UUID) ([]model.TransacaoCaixa, error) {
	var transacoes []model.TransacaoCaixa
	err := r.db.WithContext(ctx).
		Where("caixa_id = ?", caixaID).
		Order("created_at ASC").
		Find(&transacoes).Error
	return transacoes, err
}

func (r *caixaRepo) SumTransacoes(ctx context.Context, caixaID uuid.UUID, tipo, formaPagamento string) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := r.db.WithContext(ctx).Model(&model.TransacaoCaixa{}).
		Where("caixa_id = ? AND tipo = ?", caixaID, tipo)
	if formaPagamento != "" {
		q = q.Where("forma_pagamento = ?", formaPagamento)
	}
	err := q.Select("COALESCE(SUM(valor), 0)").Scan(&total).Error
	return total, err
}
