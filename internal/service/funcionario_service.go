package service

import (
	"context"
	"strings"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/model"
	"github.com/XxProLuks/SisLanch/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FuncionarioService interface {
	Criar(ctx context.Context, req dto.FuncionarioCreateRequest) (*dto.FuncionarioResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.FuncionarioUpdateRequest) (*dto.FuncionarioResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.FuncionarioResponse, error)
	Listar(ctx context.Context, filter dto.FuncionarioFilter) ([]dto.FuncionarioResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error

	// BuscarComSaldo is the counter lookup: employee by matrícula or CPF plus
	// the remaining allowance in the open competência.
	BuscarComSaldo(ctx context.Context, identificador string) (*dto.FuncionarioSaldoResponse, error)

	HistoricoConsumo(ctx context.Context, id uuid.UUID) ([]dto.ConsumoResponse, error)

	// Setores
	CriarSetor(ctx context.Context, req dto.SetorRequest) (*dto.SetorResponse, error)
	ListarSetores(ctx context.Context) ([]dto.SetorResponse, error)
	AtualizarSetor(ctx context.Context, id uuid.UUID, req dto.SetorRequest) (*dto.SetorResponse, error)
}

type funcionarioService struct {
	repo            repository.FuncionarioRepository
	competenciaRepo repository.CompetenciaRepository
	consumo         ConsumoService
}

func NewFuncionarioService(repo repository.FuncionarioRepository, competenciaRepo repository.CompetenciaRepository, consumo ConsumoService) FuncionarioService {
	return &funcionarioService{repo: repo, competenciaRepo: competenciaRepo, consumo: consumo}
}

// normalizaCPF strips formatting (dots, dashes, spaces) so lookups match
// however the document was typed.
func normalizaCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *funcionarioService) Criar(ctx context.Context, req dto.FuncionarioCreateRequest) (*dto.FuncionarioResponse, error) {
	cpf := normalizaCPF(req.CPF)
	if len(cpf) != 11 {
		return nil, apierror.InvalidArgument("CPF deve ter 11 dígitos")
	}
	if _, err := s.repo.FindByMatricula(ctx, req.Matricula); err == nil {
		return nil, apierror.AlreadyExists("Matrícula já cadastrada")
	}
	if _, err := s.repo.FindByCPF(ctx, cpf); err == nil {
		return nil, apierror.AlreadyExists("CPF já cadastrado")
	}
	if req.SetorID != nil {
		if _, err := s.repo.FindSetorByID(ctx, *req.SetorID); err != nil {
			return nil, apierror.NotFound("Setor não encontrado")
		}
	}

	f := model.Funcionario{
		Matricula:    req.Matricula,
		CPF:          cpf,
		Nome:         req.Nome,
		SetorID:      req.SetorID,
		LimiteMensal: decimal.NewFromInt(500),
		Ativo:        true,
	}
	if req.LimiteMensal != nil {
		f.LimiteMensal = *req.LimiteMensal
	}
	if err := s.repo.Create(ctx, &f); err != nil {
		return nil, err
	}
	resp := dto.FuncionarioToResponse(&f)
	return &resp, nil
}

func (s *funcionarioService) Atualizar(ctx context.Context, id uuid.UUID, req dto.FuncionarioUpdateRequest) (*dto.FuncionarioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Funcionário não encontrado")
	}
	if req.Nome != nil {
		f.Nome = *req.Nome
	}
	if req.SetorID != nil {
		if _, err := s.repo.FindSetorByID(ctx, *req.SetorID); err != nil {
			return nil, apierror.NotFound("Setor não encontrado")
		}
		f.SetorID = req.SetorID
	}
	if req.LimiteMensal != nil {
		f.LimiteMensal = *req.LimiteMensal
	}
	if req.Ativo != nil {
		f.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := dto.FuncionarioToResponse(f)
	return &resp, nil
}

func (s *funcionarioService) Buscar(ctx context.Context, id uuid.UUID) (*dto.FuncionarioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Funcionário não encontrado")
	}
	resp := dto.FuncionarioToResponse(f)
	return &resp, nil
}

func (s *funcionarioService) Listar(ctx context.Context, filter dto.FuncionarioFilter) ([]dto.FuncionarioResponse, error) {
	funcionarios, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FuncionarioResponse, 0, len(funcionarios))
	for i := range funcionarios {
		out = append(out, dto.FuncionarioToResponse(&funcionarios[i]))
	}
	return out, nil
}

func (s *funcionarioService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Funcionário não encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *funcionarioService) BuscarComSaldo(ctx context.Context, identificador string) (*dto.FuncionarioSaldoResponse, error) {
	f, err := s.repo.FindByMatricula(ctx, identificador)
	if err != nil {
		cpf := normalizaCPF(identificador)
		if f, err = s.repo.FindByCPF(ctx, cpf); err != nil {
			return nil, apierror.NotFound("Funcionário não encontrado")
		}
	}

	competencia, err := s.competenciaRepo.FindAberta(ctx)
	if err != nil {
		return nil, apierror.NoOpenPeriod("Nenhuma competência aberta")
	}
	consumido, saldo, err := s.consumo.Saldo(ctx, f, competencia.ID)
	if err != nil {
		return nil, err
	}

	return &dto.FuncionarioSaldoResponse{
		Funcionario:     dto.FuncionarioToResponse(f),
		Competencia:     competencia.Referencia(),
		ConsumoMes:      consumido,
		SaldoDisponivel: saldo,
	}, nil
}

func (s *funcionarioService) HistoricoConsumo(ctx context.Context, id uuid.UUID) ([]dto.ConsumoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("Funcionário não encontrado")
	}
	return s.consumo.Historico(ctx, id)
}

func (s *funcionarioService) CriarSetor(ctx context.Context, req dto.SetorRequest) (*dto.SetorResponse, error) {
	setor := model.Setor{
		Nome:        req.Nome,
		CentroCusto: req.CentroCusto,
		Responsavel: req.Responsavel,
		Ativo:       true,
	}
	if err := s.repo.CreateSetor(ctx, &setor); err != nil {
		return nil, err
	}
	resp := dto.SetorToResponse(&setor)
	return &resp, nil
}

func (s *funcionarioService) ListarSetores(ctx context.Context) ([]dto.SetorResponse, error) {
	setores, err := s.repo.ListSetores(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SetorResponse, 0, len(setores))
	for i := range setores {
		out = append(out, dto.SetorToResponse(&setores[i]))
	}
	return out, nil
}

func (s *funcionarioService) AtualizarSetor(ctx context.Context, id uuid.UUID, req dto.SetorRequest) (*dto.SetorResponse, error) {
	setor, err := s.repo.FindSetorByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Setor não encontrado")
	}
	setor.Nome = req.Nome
	setor.CentroCusto = req.CentroCusto
	setor.Responsavel = req.Responsavel
	if err := s.repo.UpdateSetor(ctx, setor); err != nil {
		return nil, err
	}
	resp := dto.SetorToResponse(setor)
	return &resp, nil
}
