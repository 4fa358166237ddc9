package handler

import (
	"net/http"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/middleware"
	"github.com/XxProLuks/SisLanch/internal/service"

	"github.com/gin-gonic/gin"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler { return &EstoqueHandler{svc: svc} }

// Entrada godoc
// @Summary      Registrar entrada de estoque
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EntradaEstoqueRequest true "Produto, quantidade e motivo"
// @Success      201 {object} dto.MovimentoEstoqueResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/estoque/entrada [post]
func (h *EstoqueHandler) Entrada(c *gin.Context) {
	var req dto.EntradaEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntrada(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Saida godoc
// @Summary      Registrar saída manual de estoque
// @Description  Perda, desperdício ou consumo interno. Falha se não houver quantidade suficiente.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaidaEstoqueRequest true "Produto, quantidade e motivo"
// @Success      201 {object} dto.MovimentoEstoqueResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/estoque/saida [post]
func (h *EstoqueHandler) Saida(c *gin.Context) {
	var req dto.SaidaEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarSaida(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Ajuste godoc
// @Summary      Ajustar estoque após inventário físico
// @Description  Define a quantidade absoluta contada. Quantidade igual à atual é rejeitada como no-op.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AjusteEstoqueRequest true "Produto, quantidade contada e motivo"
// @Success      201 {object} dto.MovimentoEstoqueResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/estoque/ajuste [post]
func (h *EstoqueHandler) Ajuste(c *gin.Context) {
	var req dto.AjusteEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarInventario(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Limites godoc
// @Summary      Atualizar limites de estoque de um produto
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID do produto"
// @Param        body body dto.LimitesEstoqueRequest true "Mínimo e máximo"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/estoque/{id}/limites [put]
func (h *EstoqueHandler) Limites(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.LimitesEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarLimites(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimentos godoc
// @Summary      Listar movimentações de estoque
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        produto_id query string false "UUID do produto"
// @Param        tipo       query string false "ENTRADA | SAIDA | AJUSTE | VENDA | ESTORNO"
// @Param        limit      query int    false "Máximo de registros (default 100)"
// @Success      200 {array} dto.MovimentoEstoqueResponse
// @Router       /v1/estoque/movimentos [get]
func (h *EstoqueHandler) Movimentos(c *gin.Context) {
	var filter dto.MovimentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimentos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas godoc
// @Summary      Produtos com estoque no mínimo ou abaixo
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProdutoResponse
// @Router       /v1/estoque/alertas [get]
func (h *EstoqueHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumo godoc
// @Summary      Resumo do estoque controlado
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.EstoqueResumoResponse
// @Router       /v1/estoque/resumo [get]
func (h *EstoqueHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
