package handler

import (
	"context"
	"net/http"

	"github.com/alexpardox/mercaproject/internal/apierror"
	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProveedoresHandler struct{ svc service.ProveedorService }

func NewProveedoresHandler(svc service.ProveedorService) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc}
}

// Registrar godoc
// @Summary Registrar proveedor
// @Tags proveedores
// @Accept json
// @Produce json
// @Param body body dto.RegistrarProveedorRequest true "Proveedor"
// @Success 201 {object} dto.ProveedorResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/proveedores [post]
func (h *ProveedoresHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProveedoresHandler) Listar(c *gin.Context) {
	var filtro dto.ProveedorFiltro
	if !bindQueryAndValidate(c, &filtro) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Activos lista los proveedores ACTIVO ordenados por nombre, para el
// selector al registrar un formulario.
func (h *ProveedoresHandler) Activos(c *gin.Context) {
	resp, err := h.svc.ListarActivos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) ConFormulariosActivos(c *gin.Context) {
	resp, err := h.svc.ConFormulariosActivos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) Activar(c *gin.Context)    { h.cambiarEstado(c, h.svc.Activar) }
func (h *ProveedoresHandler) Desactivar(c *gin.Context) { h.cambiarEstado(c, h.svc.Desactivar) }
func (h *ProveedoresHandler) Suspender(c *gin.Context)  { h.cambiarEstado(c, h.svc.Suspender) }

func (h *ProveedoresHandler) cambiarEstado(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProveedoresHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DisponibilidadRFC supports the registration form's live uniqueness check.
func (h *ProveedoresHandler) DisponibilidadRFC(c *gin.Context) {
	rfc := c.Query("rfc")
	if rfc == "" {
		c.JSON(http.StatusBadRequest, apierror.New("rfc requerido"))
		return
	}
	disponible, err := h.svc.RFCDisponible(c.Request.Context(), rfc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisponibilidadResponse{Disponible: disponible})
}

func (h *ProveedoresHandler) DisponibilidadEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, apierror.New("email requerido"))
		return
	}
	disponible, err := h.svc.EmailDisponible(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisponibilidadResponse{Disponible: disponible})
}
