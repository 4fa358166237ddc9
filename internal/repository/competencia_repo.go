package repository

import (
	"context"

	"github.com/XxProLuks/SisLanch/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompetenciaRepository interface {
	Create(ctx context.Context, c *model.Competencia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Competencia, error)
	FindByAnoMes(ctx context.Context, ano, mes int) (*model.Competencia, error)
	FindAberta(ctx context.Context) (*model.Competencia, error)
	// FindUltima returns the most recent competência by (ano, mes),
	// regardless of status.
	FindUltima(ctx context.Context) (*model.Competencia, error)
	List(ctx context.Context) ([]model.Competencia, error)
	Update(ctx context.Context, c *model.Competencia) error
	CreateTx(tx *gorm.DB, c *model.Competencia) error
	UpdateTx(tx *gorm.DB, c *model.Competencia) error
	FindByAnoMesTx(tx *gorm.DB, ano, mes int) (*model.Competencia, error)

	// Consumos mensais
	ListConsumos(ctx context.Context, competenciaID uuid.UUID) ([]model.ConsumoMensal, error)
	FindConsumo(ctx context.Context, funcionarioID, competenciaID uuid.UUID) (*model.ConsumoMensal, error)
	ListConsumosByFuncionario(ctx context.Context, funcionarioID uuid.UUID) ([]model.ConsumoMensal, error)

	// FindConsumoForUpdateTx loads (or creates) the employee's consumption row
	// for the period under SELECT ... FOR UPDATE, serializing concurrent
	// charges for the same employee.
	FindConsumoForUpdateTx(tx *gorm.DB, funcionarioID, competenciaID uuid.UUID) (*model.ConsumoMensal, error)
	UpdateConsumoTx(tx *gorm.DB, c *model.ConsumoMensal) error
}

type competenciaRepo struct{ db *gorm.DB }

func NewCompetenciaRepository(db *gorm.DB) CompetenciaRepository { return &competenciaRepo{db: db} }

func (r *competenciaRepo) Create(ctx context.Context, c *model.Competencia) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *competenciaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Competencia, error) {
	var c model.Competencia
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *competenciaRepo) FindByAnoMes(ctx context.Context, ano, mes int) (*model.Competencia, error) {
	var c model.Competencia
	err := r.db.WithContext(ctx).Where("ano = ? AND mes = ?", ano, mes).First(&c).Error
	return &c, err
}

func (r *competenciaRepo) FindAberta(ctx context.Context) (*model.Competencia, error) {
	var c model.Competencia
	err := r.db.WithContext(ctx).Where("status = ?", model.CompetenciaAberta).
		Order("ano DESC, mes DESC").First(&c).Error
	return &c, err
}

func (r *competenciaRepo) FindUltima(ctx context.Context) (*model.Competencia, error) {
	var c model.Competencia
	err := r.db.WithContext(ctx).Order("ano DESC, mes DESC").First(&c).Error
	return &c, err
}

func (r *competenciaRepo) List(ctx context.Context) ([]model.Competencia, error) {
	var competencias []model.Competencia
	err := r.db.WithContext(ctx).Order("ano DESC, mes DESC").Find(&competencias).Error
	return competencias, err
}

func (r *competenciaRepo) Update(ctx context.Context, c *model.Competencia) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *competenciaRepo) CreateTx(tx *gorm.DB, c *model.Competencia) error {
	return tx.Create(c).Error
}

func (r *competenciaRepo) UpdateTx(tx *gorm.DB, c *model.Competencia) error {
	return tx.Save(c).Error
}

func (r *competenciaRepo) FindByAnoMesTx(tx *gorm.DB, ano, mes int) (*model.Competencia, error) {
	var c model.Competencia
	err := tx.Where("ano = ? AND mes = ?", ano, mes).First(&c).Error
	return &c, err
}

func (r *competenciaRepo) ListConsumos(ctx context.Context, competenciaID uuid.UUID) ([]model.ConsumoMensal, error) {
	var consumos []model.ConsumoMensal
	err := r.db.WithContext(ctx).Preload("Funcionario").Preload("Funcionario.Setor").
		Where("competencia_id = ?", competenciaID).
		Find(&consumos).Error
	return consumos, err
}

func (r *competenciaRepo) FindConsumo(ctx context.Context, funcionarioID, competenciaID uuid.UUID) (*model.ConsumoMensal, error) {
	var c model.ConsumoMensal
	err := r.db.WithContext(ctx).
		Where("funcionario_id = ? AND competencia_id = ?", funcionarioID, competenciaID).
		First(&c).Error
	return &c, err
}

func (r *competenciaRepo) ListConsumosByFuncionario(ctx context.Context, funcionarioID uuid.UUID) ([]model.ConsumoMensal, error) {
	var consumos []model.ConsumoMensal
	err := r.db.WithContext(ctx).Preload("Competencia").
		Where("funcionario_id = ?", funcionarioID).
		Joins("JOIN competencias ON competencias.id = consumos_mensais.competencia_id").
		Order("competencias.ano DESC, competencias.mes DESC").
		Find(&consumos).Error
	return consumos, err
}

func (r *competenciaRepo) FindConsumoForUpdateTx(tx *gorm.DB, funcionarioID, competenciaID uuid.UUID) (*model.ConsumoMensal, error) {
	var c model.ConsumoMensal
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("funcionario_id = ? AND competencia_id = ?", funcionarioID, competenciaID).
		First(&c).Error
	if err == gorm.ErrRecordNotFound {
		c = model.ConsumoMensal{FuncionarioID: funcionarioID, CompetenciaID: competenciaID}
		if err = tx.Create(&c).Error; err != nil {
			return nil, err
		}
		// Re-read under lock: another transaction may have raced the insert.
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("funcionario_id = ? AND competencia_id = ?", funcionarioID, competenciaID).
			First(&c).Error
	}
	return &c, err
}

func (r *competenciaRepo) UpdateConsumoTx(tx *gorm.DB, c *model.ConsumoMensal) error {
	return tx.Save(c).Error
}
