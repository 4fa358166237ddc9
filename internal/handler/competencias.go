package handler

import (
	"net/http"

	"github.com/XxProLuks/SisLanch/internal/middleware"
	"github.com/XxProLuks/SisLanch/internal/service"

	"github.com/gin-gonic/gin"
)

type CompetenciasHandler struct{ svc service.CompetenciaService }

func NewCompetenciasHandler(svc service.CompetenciaService) *CompetenciasHandler {
	return &CompetenciasHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar competências
// @Tags         competencias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CompetenciaResponse
// @Router       /v1/competencias [get]
func (h *CompetenciasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atual godoc
// @Summary      Competência aberta
// @Tags         competencias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CompetenciaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/competencias/atual [get]
func (h *CompetenciasHandler) Atual(c *gin.Context) {
	resp, err := h.svc.Atual(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Criar godoc
// @Summary      Criar próxima competência
// @Description  Abre o mês seguinte à competência mais recente. O período é derivado pelo servidor.
// @Tags         competencias
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} dto.CompetenciaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/competencias [post]
func (h *CompetenciasHandler) Criar(c *gin.Context) {
	resp, err := h.svc.Criar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary      Fechar competência
// @Description  Congela os totais de consumo para a folha e abre automaticamente o mês seguinte.
// @Tags         competencias
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da competência"
// @Success      200 {object} dto.FecharCompetenciaResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/competencias/{id}/fechar [post]
func (h *CompetenciasHandler) Fechar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Consumos godoc
// @Summary      Consumos da competência
// @Description  Relatório de desconto em folha: um registro por funcionário com consumo no período.
// @Tags         competencias
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da competência"
// @Success      200 {array} dto.ConsumoResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/competencias/{id}/consumos [get]
func (h *CompetenciasHandler) Consumos(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Consumos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV godoc
// @Summary      Exportar consumos em CSV
// @Description  Arquivo para o RH: matrícula, nome, setor e valor a descontar.
// @Tags         competencias
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id path string true "UUID da competência"
// @Success      200 {string} string "CSV"
// @Failure      404 {object} apierror.Error
// @Router       /v1/competencias/{id}/export [get]
func (h *CompetenciasHandler) ExportCSV(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	content, filename, err := h.svc.ExportCSV(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}
