package handler

import (
	"net/http"

	"github.com/alexpardox/mercaproject/internal/middleware"
	"github.com/alexpardox/mercaproject/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	resp, err := h.svc.Admin(c.Request.Context(), middleware.GetClaims(c).Actor())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Comercial(c *gin.Context) {
	resp, err := h.svc.Comercial(c.Request.Context(), middleware.GetClaims(c).Actor())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Tienda(c *gin.Context) {
	resp, err := h.svc.Tienda(c.Request.Context(), middleware.GetClaims(c).Actor())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
