package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompetenciaService manages billing periods. Closing a competência freezes
// its consumption totals for payroll and immediately opens the next month, so
// the counter never operates without an open period.
type CompetenciaService interface {
	Listar(ctx context.Context) ([]dto.CompetenciaResponse, error)
	Atual(ctx context.Context) (*dto.CompetenciaResponse, error)
	Criar(ctx context.Context) (*dto.CompetenciaResponse, error)
	Fechar(ctx context.Context, id, usuarioID uuid.UUID) (*dto.FecharCompetenciaResponse, error)
	Consumos(ctx context.Context, id uuid.UUID) ([]dto.ConsumoResponse, error)

	// ExportCSV renders the payroll deduction file for a competência:
	// matrícula, nome, setor, valor. Returns the content and a filename.
	ExportCSV(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type competenciaService struct {
	repo repository.CompetenciaRepository
	db   *gorm.DB
}

func NewCompetenciaService(repo repository.CompetenciaRepository, db *gorm.DB) CompetenciaService {
	return &competenciaService{repo: repo, db: db}
}

func (s *competenciaService) Listar(ctx context.Context) ([]dto.CompetenciaResponse, error) {
	competencias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompetenciaResponse, 0, len(competencias))
	for i := range competencias {
		out = append(out, dto.CompetenciaToResponse(&competencias[i]))
	}
	return out, nil
}

func (s *competenciaService) Atual(ctx context.Context) (*dto.CompetenciaResponse, error) {
	c, err := s.repo.FindAberta(ctx)
	if err != nil {
		return nil, apierror.NoOpenPeriod("Nenhuma competência aberta")
	}
	resp := dto.CompetenciaToResponse(c)
	return &resp, nil
}

// Criar opens the month following the most recent competência. The period is
// always derived server-side so nobody can open an arbitrary or past month.
func (s *competenciaService) Criar(ctx context.Context) (*dto.CompetenciaResponse, error) {
	ano, mes := time.Now().Year(), int(time.Now().Month())
	if ultima, err := s.repo.FindUltima(ctx); err == nil {
		ano, mes = ultima.Ano, ultima.Mes+1
		if mes > 12 {
			ano, mes = ultima.Ano+1, 1
		}
	}
	if _, err := s.repo.FindByAnoMes(ctx, ano, mes); err == nil {
		return nil, apierror.AlreadyExists(fmt.Sprintf("Competência %02d/%d já existe", mes, ano))
	}
	c := model.Competencia{Ano: ano, Mes: mes, Status: model.CompetenciaAberta}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	resp := dto.CompetenciaToResponse(&c)
	return &resp, nil
}

// Fechar closes the period and creates the following month in the same
// transaction — either both happen or neither.
func (s *competenciaService) Fechar(ctx context.Context, id, usuarioID uuid.UUID) (*dto.FecharCompetenciaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Competência não encontrada")
	}
	if c.Status == model.CompetenciaFechada {
		return nil, apierror.InvalidArgument("Competência já está fechada")
	}

	proxAno, proxMes := c.Ano, c.Mes+1
	if proxMes > 12 {
		proxAno, proxMes = c.Ano+1, 1
	}

	var proxima model.Competencia
	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		agora := time.Now()
		c.Status = model.CompetenciaFechada
		c.FechadaEm = &agora
		c.FechadaPorID = &usuarioID
		if err := s.repo.UpdateTx(tx, c); err != nil {
			return err
		}

		// The next month may already exist (created by hand); reuse it.
		if existente, err := s.repo.FindByAnoMesTx(tx, proxAno, proxMes); err == nil {
			proxima = *existente
			return nil
		}
		proxima = model.Competencia{Ano: proxAno, Mes: proxMes, Status: model.CompetenciaAberta}
		return s.repo.CreateTx(tx, &proxima)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.FecharCompetenciaResponse{
		Fechada: dto.CompetenciaToResponse(c),
		Proxima: dto.CompetenciaToResponse(&proxima),
	}, nil
}

func (s *competenciaService) Consumos(ctx context.Context, id uuid.UUID) ([]dto.ConsumoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("Competência não encontrada")
	}
	consumos, err := s.repo.ListConsumos(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumoResponse, 0, len(consumos))
	for i := range consumos {
		out = append(out, consumoToResponse(&consumos[i]))
	}
	return out, nil
}

func (s *competenciaService) ExportCSV(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", apierror.NotFound("Competência não encontrada")
	}
	consumos, err := s.repo.ListConsumos(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	_ = w.Write([]string{"matricula", "nome", "setor", "competencia", "valor"})
	for i := range consumos {
		linha := consumoToResponse(&consumos[i])
		_ = w.Write([]string{
			linha.Matricula,
			linha.Nome,
			linha.Setor,
			c.Referencia(),
			linha.ValorTotal.StringFixed(2),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("convenio_%d%02d.csv", c.Ano, c.Mes)
	return buf.Bytes(), filename, nil
}

func consumoToResponse(c *model.ConsumoMensal) dto.ConsumoResponse {
	resp := dto.ConsumoResponse{FuncionarioID: c.FuncionarioID, ValorTotal: c.ValorTotal}
	if c.Funcionario != nil {
		resp.Matricula = c.Funcionario.Matricula
		resp.Nome = c.Funcionario.Nome
		resp.LimiteMensal = c.Funcionario.LimiteMensal
		if c.Funcionario.Setor != nil {
			resp.Setor = c.Funcionario.Setor.Nome
		}
	}
	if c.Competencia != nil {
		resp.Competencia = c.Competencia.Referencia()
	}
	return resp
}
