package repository

import (
	"context"

	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products and
// categories. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via in-memory stubs.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Categorias
	CreateCategoria(ctx context.Context, c *model.Categoria) error
	FindCategoriaByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	FindCategoriaByNome(ctx context.Context, nome string) (*model.Categoria, error)
	ListCategorias(ctx context.Context, somenteAtivas bool) ([]model.Categoria, error)
	UpdateCategoria(ctx context.Context, c *model.Categoria) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)

	// DeduzirEstoqueCondicionalTx decrements estoque_atual only when enough
	// stock remains (WHERE estoque_atual >= qtd). Returns false when the
	// conditional update matched no row — the per-product serialization that
	// closes the concurrent-sale race.
	DeduzirEstoqueCondicionalTx(tx *gorm.DB, id uuid.UUID, qtd int) (bool, error)

	// AjustarEstoqueTx applies a signed delta without a condition (entries,
	// restorations).
	AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DefinirEstoqueTx sets estoque_atual to an absolute quantity (inventory
	// count adjustment).
	DefinirEstoqueTx(tx *gorm.DB, id uuid.UUID, novo int) error

	// ListAbaixoMinimo returns active stock-controlled products at or below
	// their minimum level.
	ListAbaixoMinimo(ctx context.Context) ([]model.Produto, error)
	CountEstoque(ctx context.Context) (total, abaixoMinimo, zerados int64, err error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) DB() *gorm.DB { return r.db }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error) {
	var produtos []model.Produto
	q := r.db.WithContext(ctx).Model(&model.Produto{}).Preload("Categoria")

	// Ativo filter: "false" = inativos, "all" = todos, default = ativos
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}
	if filter.Nome != "" {
		q = q.Where("nome ILIKE ?", "%"+filter.Nome+"%")
	}

	err := q.Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *produtoRepo) FindCategoriaByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *produtoRepo) FindCategoriaByNome(ctx context.Context, nome string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&c).Error
	return &c, err
}

func (r *produtoRepo) ListCategorias(ctx context.Context, somenteAtivas bool) ([]model.Categoria, error) {
	var categorias []model.Categoria
	q := r.db.WithContext(ctx).Model(&model.Categoria{})
	if somenteAtivas {
		q = q.Where("ativo = true")
	}
	err := q.Order("nome ASC").Find(&categorias).Error
	return categorias, err
}

func (r *produtoRepo) UpdateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *produtoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) DeduzirEstoqueCondicionalTx(tx *gorm.DB, id uuid.UUID, qtd int) (bool, error) {
	res := tx.Model(&model.Produto{}).
		Where("id = ? AND estoque_atual >= ?", id, qtd).
		Update("estoque_atual", gorm.Expr("estoque_atual - ?", qtd))
	return res.RowsAffected > 0, res.Error
}

func (r *produtoRepo) AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *produtoRepo) DefinirEstoqueTx(tx *gorm.DB, id uuid.UUID, novo int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque_atual", novo).Error
}

func (r *produtoRepo) ListAbaixoMinimo(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Preload("Categoria").
		Where("controlar_estoque = true AND ativo = true AND estoque_atual <= estoque_minimo").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) CountEstoque(ctx context.Context) (total, abaixoMinimo, zerados int64, err error) {
	base := "controlar_estoque = true AND ativo = true"
	if err = r.db.WithContext(ctx).Model(&model.Produto{}).Where(base).Count(&total).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&model.Produto{}).
		Where(base + " AND estoque_atual < estoque_minimo").Count(&abaixoMinimo).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&model.Produto{}).
		Where(base + " AND estoque_atual = 0").Count(&zerados).Error
	return
}
