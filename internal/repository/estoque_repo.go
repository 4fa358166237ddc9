package repository

import (
	"context"

	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"

	"gorm.io/gorm"
)

type EstoqueRepository interface {
	CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	ListMovimentos(ctx context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, error)
}

type estoqueRepo struct{ db *gorm.DB }

func NewEstoqueRepository(db *gorm.DB) EstoqueRepository { return &estoqueRepo{db: db} }

func (r *estoqueRepo) CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *estoqueRepo) ListMovimentos(ctx context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, error) {
	var movimentos []model.MovimentoEstoque
	q := r.db.WithContext(ctx).Model(&model.MovimentoEstoque{}).Preload("Produto")

	if filter.ProdutoID != "" {
		q = q.Where("produto_id = ?", filter.ProdutoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}

	err := q.Order("created_at DESC").Limit(limit).Find(&movimentos).Error
	return movimentos, err
}
