package repository

import (
	"context"

	"github.com/XxProLuks/SisLanch/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(ctx context.Context, a *model.AuditLog) error
	CreateTx(tx *gorm.DB, a *model.AuditLog) error
	ListByTabela(ctx context.Context, tabela string, limit int) ([]model.AuditLog, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, a *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auditRepo) CreateTx(tx *gorm.DB, a *model.AuditLog) error {
	return tx.Create(a).Error
}

func (r *auditRepo) ListByTabela(ctx context.Context, tabela string, limit int) ([]model.AuditLog, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("tabela = ?", tabela).
		Order("created_at DESC").Limit(limit).
		Find(&logs).Error
	return logs, err
}
