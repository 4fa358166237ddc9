package handler

import (
	"net/http"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/service"

	"github.com/gin-gonic/gin"
)

type FuncionariosHandler struct{ svc service.FuncionarioService }

func NewFuncionariosHandler(svc service.FuncionarioService) *FuncionariosHandler {
	return &FuncionariosHandler{svc: svc}
}

// Criar godoc
// @Summary      Cadastrar funcionário
// @Tags         funcionarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FuncionarioCreateRequest true "Dados do funcionário"
// @Success      201 {object} dto.FuncionarioResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/funcionarios [post]
func (h *FuncionariosHandler) Criar(c *gin.Context) {
	var req dto.FuncionarioCreateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar funcionários
// @Tags         funcionarios
// @Produce      json
// @Security     BearerAuth
// @Param        ativo    query string false "true (default) | false | all"
// @Param        setor_id query string false "UUID do setor"
// @Param        busca    query string false "Nome ou matrícula"
// @Success      200 {array} dto.FuncionarioResponse
// @Router       /v1/funcionarios [get]
func (h *FuncionariosHandler) Listar(c *gin.Context) {
	var filter dto.FuncionarioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary      Buscar funcionário por ID
// @Tags         funcionarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do funcionário"
// @Success      200 {object} dto.FuncionarioResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/funcionarios/{id} [get]
func (h *FuncionariosHandler) Buscar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarComSaldo godoc
// @Summary      Consulta de balcão por matrícula ou CPF
// @Description  Retorna o funcionário e o saldo disponível do convênio na competência aberta.
// @Tags         funcionarios
// @Produce      json
// @Security     BearerAuth
// @Param        identificador path string true "Matrícula ou CPF"
// @Success      200 {object} dto.FuncionarioSaldoResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/funcionarios/consulta/{identificador} [get]
func (h *FuncionariosHandler) BuscarComSaldo(c *gin.Context) {
	resp, err := h.svc.BuscarComSaldo(c.Request.Context(), c.Param("identificador"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary      Atualizar funcionário
// @Tags         funcionarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID do funcionário"
// @Param        body body dto.FuncionarioUpdateRequest true "Campos a atualizar"
// @Success      200 {object} dto.FuncionarioResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/funcionarios/{id} [put]
func (h *FuncionariosHandler) Atualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.FuncionarioUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary      Desativar funcionário
// @Tags         funcionarios
// @Security     BearerAuth
// @Param        id path string true "UUID do funcionário"
// @Success      204
// @Failure      404 {object} apierror.Error
// @Router       /v1/funcionarios/{id} [delete]
func (h *FuncionariosHandler) Desativar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HistoricoConsumo godoc
// @Summary      Histórico de consumo por competência
// @Tags         funcionarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do funcionário"
// @Success      200 {array} dto.ConsumoResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/funcionarios/{id}/consumo [get]
func (h *FuncionariosHandler) HistoricoConsumo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.HistoricoConsumo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CriarSetor godoc
// @Summary      Cadastrar setor
// @Tags         setores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SetorRequest true "Dados do setor"
// @Success      201 {object} dto.SetorResponse
// @Router       /v1/setores [post]
func (h *FuncionariosHandler) CriarSetor(c *gin.Context) {
	var req dto.SetorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarSetor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarSetores godoc
// @Summary      Listar setores
// @Tags         setores
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.SetorResponse
// @Router       /v1/setores [get]
func (h *FuncionariosHandler) ListarSetores(c *gin.Context) {
	resp, err := h.svc.ListarSetores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarSetor godoc
// @Summary      Atualizar setor
// @Tags         setores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string           true "UUID do setor"
// @Param        body body dto.SetorRequest true "Dados do setor"
// @Success      200 {object} dto.SetorResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/setores/{id} [put]
func (h *FuncionariosHandler) AtualizarSetor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SetorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarSetor(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
