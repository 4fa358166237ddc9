package repository

import (
	"context"
	"time"

	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error

	// NextNumeroTx atomically increments and returns today's order counter via
	// an upsert on pedido_sequencias, so concurrent orders never share a
	// number.
	NextNumeroTx(tx *gorm.DB, data string) (int, error)

	ListCozinha(ctx context.Context) ([]model.Pedido, error)
	ResumoDia(ctx context.Context, dia time.Time) (*dto.PedidoResumoDia, error)
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Itens.Produto").
		Preload("Funcionario").Preload("Competencia").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Preload("Itens").Preload("Itens.Produto").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TipoCliente != "" {
		q = q.Where("tipo_cliente = ?", filter.TipoCliente)
	}
	if filter.FuncionarioID != "" {
		q = q.Where("funcionario_id = ?", filter.FuncionarioID)
	}
	if filter.DataInicio != "" {
		if t, err := time.Parse("2006-01-02", filter.DataInicio); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if filter.DataFim != "" {
		if t, err := time.Parse("2006-01-02", filter.DataFim); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	err := q.Preload("Itens").Preload("Itens.Produto").Preload("Funcionario").
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Pedido{}).Where("id = ?", id).Update("status", status).Error
}

func (r *pedidoRepo) NextNumeroTx(tx *gorm.DB, data string) (int, error) {
	var proximo int
	err := tx.Raw(`
		INSERT INTO pedido_sequencias (data, proximo)
		VALUES (?, 1)
		ON CONFLICT (data) DO UPDATE SET proximo = pedido_sequencias.proximo + 1
		RETURNING proximo`, data).Scan(&proximo).Error
	return proximo, err
}

func (r *pedidoRepo) ListCozinha(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Itens.Produto").
		Where("status IN ?", []string{model.PedidoPendente, model.PedidoPreparando, model.PedidoPronto}).
		Order("created_at ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ResumoDia(ctx context.Context, dia time.Time) (*dto.PedidoResumoDia, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	fim := inicio.AddDate(0, 0, 1)

	resumo := &dto.PedidoResumoDia{Data: inicio.Format("2006-01-02")}

	base := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("created_at >= ? AND created_at < ?", inicio, fim)

	if err := base.Session(&gorm.Session{}).Count(&resumo.TotalPedidos).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status <> ?", model.PedidoCancelado).
		Select("COALESCE(SUM(valor_total), 0)").Scan(&resumo.ValorTotal).Error; err != nil {
		return nil, err
	}

	type linha struct {
		Status string
		Qtd    int64
	}
	var linhas []linha
	if err := base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS qtd").Group("status").Scan(&linhas).Error; err != nil {
		return nil, err
	}
	resumo.PorStatus = make(map[string]int64, len(linhas))
	for _, l := range linhas {
		resumo.PorStatus[l.Status] = l.Qtd
	}
	return resumo, nil
}
