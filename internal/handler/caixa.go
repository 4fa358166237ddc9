package handler

import (
	"net/http"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/middleware"
	"github.com/XxProLuks/SisLanch/internal/service"

	"github.com/gin-gonic/gin"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary      Abrir caixa do dia
// @Description  Abre o caixa da data corrente com o valor de troco inicial. Um caixa por data, sem reabertura.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CaixaAbrirRequest true "Valor de abertura"
// @Success      201 {object} dto.CaixaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.CaixaAbrirRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary      Fechar caixa do dia
// @Description  Fecha o caixa com o valor contado; o sistema calcula o esperado e a diferença.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CaixaFecharRequest true "Valor contado"
// @Success      200 {object} dto.CaixaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.CaixaFecharRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumo godoc
// @Summary      Resumo do caixa aberto
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CaixaResumoResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/caixa/resumo [get]
func (h *CaixaHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sangria godoc
// @Summary      Registrar sangria
// @Description  Retirada de dinheiro do caixa. Limitada ao dinheiro esperado na gaveta.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CaixaMovimentoRequest true "Valor e motivo"
// @Success      201 {object} dto.TransacaoCaixaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/caixa/sangria [post]
func (h *CaixaHandler) Sangria(c *gin.Context) {
	var req dto.CaixaMovimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Sangria(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Suprimento godoc
// @Summary      Registrar suprimento
// @Description  Entrada de dinheiro no caixa durante o expediente.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CaixaMovimentoRequest true "Valor e motivo"
// @Success      201 {object} dto.TransacaoCaixaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/caixa/suprimento [post]
func (h *CaixaHandler) Suprimento(c *gin.Context) {
	var req dto.CaixaMovimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Suprimento(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Transacoes godoc
// @Summary      Listar transações de um caixa
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do caixa"
// @Success      200 {array} dto.TransacaoCaixaResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/caixa/{id}/transacoes [get]
func (h *CaixaHandler) Transacoes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Transacoes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historico godoc
// @Summary      Listar caixas por período
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        data_inicio query string true "YYYY-MM-DD"
// @Param        data_fim    query string true "YYYY-MM-DD"
// @Success      200 {array} dto.CaixaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/caixa/historico [get]
func (h *CaixaHandler) Historico(c *gin.Context) {
	var filter dto.CaixaRelatorioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest(err.Error()))
		return
	}
	resp, err := h.svc.Historico(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Relatorio godoc
// @Summary      Relatório de caixas por período
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        data_inicio query string true "YYYY-MM-DD"
// @Param        data_fim    query string true "YYYY-MM-DD"
// @Success      200 {object} dto.CaixaRelatorioResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/caixa/relatorio [get]
func (h *CaixaHandler) Relatorio(c *gin.Context) {
	var filter dto.CaixaRelatorioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest(err.Error()))
		return
	}
	resp, err := h.svc.Relatorio(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
