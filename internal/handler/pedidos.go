package handler

import (
	"net/http"

	"github.com/XxProLuks/SisLanch/internal/apierror"
	"github.com/XxProLuks/SisLanch/internal/dto"
	"github.com/XxProLuks/SisLanch/internal/middleware"
	"github.com/XxProLuks/SisLanch/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler { return &PedidosHandler{svc: svc} }

// Criar godoc
// @Summary      Registrar um novo pedido
// @Description  Cria um pedido ACID: numera, deduz estoque, cobra convênio e lança a venda no caixa.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PedidoCreateRequest true "Detalhe do pedido"
// @Success      201  {object} dto.PedidoResponse
// @Failure      400  {object} apierror.Error
// @Failure      403  {object} apierror.Error
// @Router       /v1/pedidos [post]
func (h *PedidosHandler) Criar(c *gin.Context) {
	var req dto.PedidoCreateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        status        query string false "PENDENTE | PREPARANDO | PRONTO | ENTREGUE | CANCELADO"
// @Param        tipo_cliente  query string false "FUNCIONARIO | PACIENTE"
// @Param        data_inicio   query string false "YYYY-MM-DD"
// @Param        data_fim      query string false "YYYY-MM-DD"
// @Param        page          query int    false "Página (default 1)"
// @Param        page_size     query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.PedidoListResponse
// @Router       /v1/pedidos [get]
func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
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
// @Summary      Buscar pedido por ID
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/pedidos/{id} [get]
func (h *PedidosHandler) Buscar(c *gin.Context) {
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

// AtualizarStatus godoc
// @Summary      Atualizar status do pedido
// @Description  Move o pedido no fluxo PENDENTE → PREPARANDO → PRONTO → ENTREGUE. CANCELADO estorna estoque e convênio.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "UUID do pedido"
// @Param        body body dto.PedidoStatusRequest true "Novo status"
// @Success      200 {object} dto.PedidoResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/pedidos/{id}/status [patch]
func (h *PedidosHandler) AtualizarStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PedidoStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarStatus(c.Request.Context(), id, middleware.UserID(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Description  Cancela o pedido, restaurando estoque e estornando o consumo do convênio.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      403 {object} apierror.Error
// @Router       /v1/pedidos/{id} [delete]
func (h *PedidosHandler) Cancelar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cozinha godoc
// @Summary      Fila da cozinha
// @Description  Pedidos não terminais em ordem de chegada.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PedidoResponse
// @Router       /v1/pedidos/cozinha [get]
func (h *PedidosHandler) Cozinha(c *gin.Context) {
	resp, err := h.svc.Cozinha(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumoHoje godoc
// @Summary      Resumo do dia
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.PedidoResumoDia
// @Router       /v1/pedidos/resumo-hoje [get]
func (h *PedidosHandler) ResumoHoje(c *gin.Context) {
	resp, err := h.svc.ResumoHoje(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
