package handler

import (
	"net/http"

	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/middleware"
	"github.com/alexpardox/mercaproject/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Formularios godoc
// @Summary Reporte de formularios por proveedor o tienda
// @Tags reportes
// @Produce json
// @Param proveedor query string false "ID del proveedor"
// @Param tienda query string false "Codigo de tienda"
// @Param desde query string true "Fecha inicial (2006-01-02)"
// @Param hasta query string true "Fecha final (2006-01-02)"
// @Param formato query string false "json o pdf"
// @Success 200 {object} dto.ReporteFormulariosResponse
// @Router /v1/reportes/formularios [get]
func (h *ReportesHandler) Formularios(c *gin.Context) {
	var filtro dto.ReporteFiltro
	if !bindQueryAndValidate(c, &filtro) {
		return
	}
	resp, pdfPath, err := h.svc.Formularios(c.Request.Context(), middleware.GetClaims(c).Actor(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	if filtro.Formato == "pdf" {
		c.FileAttachment(pdfPath, "reporte_formularios.pdf")
		return
	}
	c.JSON(http.StatusOK, resp)
}
