package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/alexpardox/mercaproject/internal/apierror"
	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/middleware"
	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

type FormulariosHandler struct {
	svc       service.FormularioService
	diasAviso int
}

func NewFormulariosHandler(svc service.FormularioService, diasAviso int) *FormulariosHandler {
	return &FormulariosHandler{svc: svc, diasAviso: diasAviso}
}

// Registrar godoc
// @Summary Registrar formulario de espacio
// @Tags formularios
// @Accept json
// @Produce json
// @Param body body dto.RegistrarFormularioRequest true "Formulario"
// @Success 201 {object} dto.FormularioResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/formularios [post]
func (h *FormulariosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarFormularioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), middleware.GetClaims(c).Actor(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar applies the optional filters. For tienda users the tienda filter is
// overridden with their assigned store; an unassigned tienda user gets no
// store constraint at all.
func (h *FormulariosHandler) Listar(c *gin.Context) {
	var filtro dto.FormularioFiltro
	if !bindQueryAndValidate(c, &filtro) {
		return
	}
	actor := middleware.GetClaims(c).Actor()
	if actor.Rol == model.RolTienda {
		filtro.Tienda = ""
		if actor.TiendaAsignada != nil {
			filtro.Tienda = *actor.TiendaAsignada
		}
	}
	resp, err := h.svc.BuscarConFiltros(c.Request.Context(), actor, filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), middleware.GetClaims(c).Actor(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar gates on the edit predicate before touching the form, so a
// tienda user editing someone else's form (or a missing one) sees 403,
// not 404.
func (h *FormulariosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	actor := middleware.GetClaims(c).Actor()
	if !h.svc.PuedeEditar(c.Request.Context(), actor, id) {
		c.JSON(http.StatusForbidden, apierror.New("No tiene permisos para editar este formulario"))
		return
	}
	var req dto.ActualizarFormularioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) Cancelar(c *gin.Context) {
	h.flipEstado(c, h.svc.Cancelar)
}

func (h *FormulariosHandler) Activar(c *gin.Context) {
	h.flipEstado(c, h.svc.Activar)
}

func (h *FormulariosHandler) flipEstado(c *gin.Context, op func(ctx context.Context, actor model.Actor, id uuid.UUID) (*dto.FormularioResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	actor := middleware.GetClaims(c).Actor()
	if !h.svc.PuedeEditar(c.Request.Context(), actor, id) {
		c.JSON(http.StatusForbidden, apierror.New("No tiene permisos para editar este formulario"))
		return
	}
	resp, err := op(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), middleware.GetClaims(c).Actor(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BarrerVencidos is the on-demand counterpart of the scheduled sweep.
func (h *FormulariosHandler) BarrerVencidos(c *gin.Context) {
	vencidos, err := h.svc.BarrerVencidos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BarridoResponse{Vencidos: vencidos})
}

func (h *FormulariosHandler) ProximosAVencer(c *gin.Context) {
	dias := cast.ToInt(c.DefaultQuery("dias", ""))
	if dias <= 0 {
		dias = h.diasAviso
	}
	resp, err := h.svc.ProximosAVencer(c.Request.Context(), middleware.GetClaims(c).Actor(), dias)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) Vigentes(c *gin.Context) {
	fecha := time.Now()
	if q := c.Query("fecha"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida"))
			return
		}
		fecha = parsed
	}
	resp, err := h.svc.VigentesEnFecha(c.Request.Context(), middleware.GetClaims(c).Actor(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) PorProveedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.PorProveedor(c.Request.Context(), middleware.GetClaims(c).Actor(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) PorUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.PorUsuario(c.Request.Context(), middleware.GetClaims(c).Actor(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) PorTipoEspacio(c *gin.Context) {
	tipo := model.TipoEspacio(c.Param("tipo"))
	if tipo.Descripcion() == "" {
		c.JSON(http.StatusBadRequest, apierror.New("tipo de espacio desconocido"))
		return
	}
	resp, err := h.svc.PorTipoEspacio(c.Request.Context(), middleware.GetClaims(c).Actor(), tipo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulariosHandler) Stats(c *gin.Context) {
	if tienda := c.Query("tienda"); tienda != "" {
		resp, err := h.svc.ConteoEstadosPorTienda(c.Request.Context(), tienda)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	resp, err := h.svc.ConteoEstados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
