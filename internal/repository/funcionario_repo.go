package repository

import (
	"context"

	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuncionarioRepository interface {
	Create(ctx context.Context, f *model.Funcionario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Funcionario, error)
	FindByMatricula(ctx context.Context, matricula string) (*model.Funcionario, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Funcionario, error)
	List(ctx context.Context, filter dto.FuncionarioFilter) ([]model.Funcionario, error)
	Update(ctx context.Context, f *model.Funcionario) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Funcionario, error)

	// Setores
	CreateSetor(ctx context.Context, s *model.Setor) error
	FindSetorByID(ctx context.Context, id uuid.UUID) (*model.Setor, error)
	ListSetores(ctx context.Context, somenteAtivos bool) ([]model.Setor, error)
	UpdateSetor(ctx context.Context, s *model.Setor) error
}

type funcionarioRepo struct{ db *gorm.DB }

func NewFuncionarioRepository(db *gorm.DB) FuncionarioRepository { return &funcionarioRepo{db: db} }

func (r *funcionarioRepo) Create(ctx context.Context, f *model.Funcionario) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *funcionarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Preload("Setor").First(&f, "id = ?", id).Error
	return &f, err
}

func (r *funcionarioRepo) FindByMatricula(ctx context.Context, matricula string) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Preload("Setor").Where("matricula = ?", matricula).First(&f).Error
	return &f, err
}

func (r *funcionarioRepo) FindByCPF(ctx context.Context, cpf string) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Preload("Setor").Where("cpf = ?", cpf).First(&f).Error
	return &f, err
}

func (r *funcionarioRepo) List(ctx context.Context, filter dto.FuncionarioFilter) ([]model.Funcionario, error) {
	var funcionarios []model.Funcionario
	q := r.db.WithContext(ctx).Model(&model.Funcionario{}).Preload("Setor")

	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
	default:
		q = q.Where("ativo = true")
	}
	if filter.SetorID != "" {
		q = q.Where("setor_id = ?", filter.SetorID)
	}
	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where("nome ILIKE ? OR matricula ILIKE ?", like, like)
	}

	err := q.Order("nome ASC").Find(&funcionarios).Error
	return funcionarios, err
}

func (r *funcionarioRepo) Update(ctx context.Context, f *model.Funcionario) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *funcionarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Funcionario{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *funcionarioRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Funcionario, error) {
	var f model.Funcionario
	err := tx.First(&f, "id = ?", id).Error
	return &f, err
}

func (r *funcionarioRepo) CreateSetor(ctx context.Context, s *model.Setor) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *funcionarioRepo) FindSetorByID(ctx context.Context, id uuid.UUID) (*model.Setor, error) {
	var s model.Setor
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *funcionarioRepo) ListSetores(ctx context.Context, somenteAtivos bool) ([]model.Setor, error) {
	var setores []model.Setor
	q := r.db.WithContext(ctx).Model(&model.Setor{})
	if somenteAtivos {
		q = q.Where("ativo = true")
	}
	err := q.Order("nome ASC").Find(&setores).Error
	return setores, err
}

func (r *funcionarioRepo) UpdateSetor(ctx context.Context, s *model.Setor) error {
	return r.db.WithContext(ctx).Save(s).Error
}
