package service

import (
	"context"
	"time"

	"github.com/alexpardox/mercaproject/internal/apperr"
	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/repository"

	"github.com/google/uuid"
)

const fechaLayout = "2006-01-02"

type FormularioService interface {
	Registrar(ctx context.Context, actor model.Actor, req dto.RegistrarFormularioRequest) (*dto.FormularioResponse, error)
	ObtenerPorID(ctx context.Context, actor model.Actor, id uuid.UUID) (*dto.FormularioResponse, error)
	BuscarConFiltros(ctx context.Context, actor model.Actor, filtro dto.FormularioFiltro) (*dto.ListaFormulariosResponse, error)
	Actualizar(ctx context.Context, actor model.Actor, id uuid.UUID, req dto.ActualizarFormularioRequest) (*dto.FormularioResponse, error)
	Cancelar(ctx context.Context, actor model.Actor, id uuid.UUID) (*dto.FormularioResponse, error)
	Activar(ctx context.Context, actor model.Actor, id uuid.UUID) (*dto.FormularioResponse, error)
	Eliminar(ctx context.Context, actor model.Actor, id uuid.UUID) error
	BarrerVencidos(ctx context.Context) (int, error)
	ProximosAVencer(ctx context.Context, actor model.Actor, dias int) ([]dto.FormularioResponse, error)
	VigentesEnFecha(ctx context.Context, actor model.Actor, fecha time.Time) ([]dto.FormularioResponse, error)
	PorProveedor(ctx context.Context, actor model.Actor, proveedorID uuid.UUID) ([]dto.FormularioResponse, error)
	PorUsuario(ctx context.Context, actor model.Actor, usuarioID uuid.UUID) ([]dto.FormularioResponse, error)
	PorTipoEspacio(ctx context.Context, actor model.Actor, tipo model.TipoEspacio) ([]dto.FormularioResponse, error)
	ActivosPorTienda(ctx context.Context, actor model.Actor, tienda string) ([]dto.FormularioResponse, error)
	ConteoEstados(ctx context.Context) (*dto.ConteoEstadosResponse, error)
	ConteoEstadosPorTienda(ctx context.Context, tienda string) (*dto.ConteoEstadosResponse, error)
	PuedeEditar(ctx context.Context, actor model.Actor, id uuid.UUID) bool
	PuedeEliminar(actor model.Actor) bool
}

type formularioService struct {
	repo          repository.FormularioRepository
	proveedorRepo repository.ProveedorRepository
}

func NewFormularioService(repo repository.FormularioRepository, proveedorRepo repository.ProveedorRepository) FormularioService {
	return &formularioService{repo: repo, proveedorRepo: proveedorRepo}
}

// hoy is today truncated to the date, so comparisons against date-only
// columns behave day-wise.
func hoy() time.Time {
	ahora := time.Now()
	return time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
}

// Registrar creates a form. Whatever estado the client sent, the stored
// form comes out ACTIVO; the date window is validated against today.
func (s *formularioService) Registrar(ctx context.Context, actor model.Actor, req dto.RegistrarFormularioRequest) (*dto.FormularioResponse, error) {
	inicio, fin, err := parsearVentana(req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}
	if inicio.Before(hoy()) {
		return nil, apperr.Validation("la fecha de inicio no puede ser anterior a hoy")
	}

	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apperr.Validation("proveedor_id inválido")
	}
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		return nil, apperr.NotFound("proveedor no encontrado")
	}

	f := &model.Formulario{
		NombreTienda:    req.NombreTienda,
		CodigoTienda:    req.CodigoTienda,
		ProveedorID:     proveedorID,
		UsuarioID:       actor.ID,
		AreaAsignada:    req.AreaAsignada,
		TipoEspacio:     model.TipoEspacio(req.TipoEspacio),
		MetrosCuadrados: req.MetrosCuadrados,
		NumeroProductos: req.NumeroProductos,
		FechaInicio:     inicio,
		FechaFin:        fin,
		PrecioAcordado:  req.PrecioAcordado,
		Observaciones:   req.Observaciones,
		Estado:          model.FormularioActivo,
		FechaCreacion:   time.Now(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return formularioToResponse(f, actor), nil
}

func (s *formularioService) ObtenerPorID(ctx context.Context, actor model.Actor, id uuid.UUID) (*dto.FormularioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("formulario no encontrado")
	}
	return formularioToResponse(f, actor), nil
}

// BuscarConFiltros composes the optional filters in memory over the full
// list. Absent filters impose no constraint; date filters bound the creation
// timestamp with inclusive day boundaries. The repo already returns
// newest-created first and the filter preserves that order.
func (s *formularioService) BuscarConFiltros(ctx context.Context, actor model.Actor, filtro dto.FormularioFiltro) (*dto.ListaFormulariosResponse, error) {
	formularios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var proveedorID *uuid.UUID
	if filtro.ProveedorID != "" {
		pid, err := uuid.Parse(filtro.ProveedorID)
		if err != nil {
			return nil, apperr.Validation("proveedor inválido")
		}
		proveedorID = &pid
	}
	var desde, hasta *time.Time
	if filtro.FechaInicio != "" {
		t, err := time.ParseInLocation(fechaLayout, filtro.FechaInicio, time.Local)
		if err != nil {
			return nil, apperr.Validation("fecha_inicio inválida")
		}
		// One second off each boundary keeps midnight-exact timestamps in.
		t = t.Add(-time.Second)
		desde = &t
	}
	if filtro.FechaFin != "" {
		t, err := time.ParseInLocation(fechaLayout, filtro.FechaFin, time.Local)
		if err != nil {
			return nil, apperr.Validation("fecha_fin inválida")
		}
		t = t.Add(24*time.Hour + time.Second)
		hasta = &t
	}

	resultado := make([]dto.FormularioResponse, 0, len(formularios))
	for i := range formularios {
		f := &formularios[i]
		if filtro.Tienda != "" && f.CodigoTienda != filtro.Tienda {
			continue
		}
		if proveedorID != nil && f.ProveedorID != *proveedorID {
			continue
		}
		if filtro.Estado != "" && f.Estado != model.EstadoFormulario(filtro.Estado) {
			continue
		}
		if desde != nil && !f.FechaCreacion.After(*desde) {
			continue
		}
		if hasta != nil && !f.FechaCreacion.Before(*hasta) {
			continue
		}
		resultado = append(resultado, *formularioToResponse(f, actor))
	}
	return &dto.ListaFormulariosResponse{Formularios: resultado, Total: len(resultado)}, nil
}

// Actualizar copies every mutable field verbatim, estado included — unlike
// registration it neither forces ACTIVO nor rejects a start date in the
// past. The expiry re-check still runs before the save, so an already-past
// window comes out VENCIDO no matter what the client sent.
func (s *formularioService) Actualizar(ctx context.Context, actor model.Actor, id uuid.UUID, req dto.ActualizarFormularioRequest) (*dto.FormularioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("formulario no encontrado")
	}
	inicio, fin, err := parsearVentana(req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apperr.Validation("proveedor_id inválido")
	}

	f.NombreTienda = req.NombreTienda
	f.CodigoTienda = req.CodigoTienda
	f.ProveedorID = proveedorID
	f.AreaAsignada = req.AreaAsignada
	f.TipoEspacio = model.TipoEspacio(req.TipoEspacio)
	f.MetrosCuadrados = req.MetrosCuadrados
	f.NumeroProductos = req.NumeroProductos
	f.FechaInicio = inicio
	f.FechaFin = fin
	f.PrecioAcordado = req.PrecioAcordado
	f.Observaciones = req.Observaciones
	f.Estado = model.EstadoFormulario(req.Estado)

	return s.guardar(ctx, f, actor)
}

// Cancelar is a free flip: any estado can become CANCELADO.
func (s *formularioService) Cancelar(ctx context.Context, actor model.Actor, id uuid.UUID) (*dto.FormularioResponse, error) {
	return s.cambiarEstado(ctx, actor, id, model.FormularioCancelado)
}

// Activar is equally unguarded; a cancelled or expired form can come back.
func (s *formularioService) Activar(ctx context.Context, actor model.Actor, id uuid.UUID) (*dto.FormularioResponse, error) {
	return s.cambiarEstado(ctx, actor, id, model.FormularioActivo)
}

func (s *formularioService) cambiarEstado(ctx context.Context, actor model.Actor, id uuid.UUID, estado model.EstadoFormulario) (*dto.FormularioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("formulario no encontrado")
	}
	f.Estado = estado
	return s.guardar(ctx, f, actor)
}

// guardar stamps the update time, runs the expiry re-check and persists.
// Every update path funnels through here so no save can skip the re-check.
func (s *formularioService) guardar(ctx context.Context, f *model.Formulario, actor model.Actor) (*dto.FormularioResponse, error) {
	ahora := time.Now()
	f.FechaActualizacion = &ahora
	f.RevisarVencimiento(hoy())
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return formularioToResponse(f, actor), nil
}

func (s *formularioService) Eliminar(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if !s.PuedeEliminar(actor) {
		return apperr.Permission("solo un administrador puede eliminar formularios")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.NotFound("formulario no encontrado")
	}
	return s.repo.Delete(ctx, id)
}

// BarrerVencidos expires every ACTIVO form whose window already closed and
// returns how many flipped. Idempotent; safe to run at any time.
func (s *formularioService) BarrerVencidos(ctx context.Context) (int, error) {
	activos, err := s.repo.ListByEstado(ctx, model.FormularioActivo)
	if err != nil {
		return 0, err
	}
	dia := hoy()
	vencidos := 0
	for i := range activos {
		f := &activos[i]
		if !f.RevisarVencimiento(dia) {
			continue
		}
		ahora := time.Now()
		f.FechaActualizacion = &ahora
		if err := s.repo.Update(ctx, f); err != nil {
			return vencidos, err
		}
		vencidos++
	}
	return vencidos, nil
}

func (s *formularioService) ProximosAVencer(ctx context.Context, actor model.Actor, dias int) ([]dto.FormularioResponse, error) {
	dia := hoy()
	formularios, err := s.repo.ListProximosAVencer(ctx, dia, dia.AddDate(0, 0, dias))
	if err != nil {
		return nil, err
	}
	return formulariosToResponse(formularios, actor), nil
}

func (s *formularioService) VigentesEnFecha(ctx context.Context, actor model.Actor, fecha time.Time) ([]dto.FormularioResponse, error) {
	formularios, err := s.repo.ListVigentesEnFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return formulariosToResponse(formularios, actor), nil
}

func (s *formularioService) PorProveedor(ctx context.Context, actor model.Actor, proveedorID uuid.UUID) ([]dto.FormularioResponse, error) {
	formularios, err := s.repo.ListByProveedor(ctx, proveedorID)
	if err != nil {
		return nil, err
	}
	return formulariosToResponse(formularios, actor), nil
}

func (s *formularioService) PorUsuario(ctx context.Context, actor model.Actor, usuarioID uuid.UUID) ([]dto.FormularioResponse, error) {
	formularios, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return formulariosToResponse(formularios, actor), nil
}

func (s *formularioService) PorTipoEspacio(ctx context.Context, actor model.Actor, tipo model.TipoEspacio) ([]dto.FormularioResponse, error) {
	formularios, err := s.repo.ListByTipoEspacio(ctx, tipo)
	if err != nil {
		return nil, err
	}
	return formulariosToResponse(formularios, actor), nil
}

func (s *formularioService) ActivosPorTienda(ctx context.Context, actor model.Actor, tienda string) ([]dto.FormularioResponse, error) {
	formularios, err := s.repo.ListActivosByTienda(ctx, tienda)
	if err != nil {
		return nil, err
	}
	return formulariosToResponse(formularios, actor), nil
}

func (s *formularioService) ConteoEstados(ctx context.Context) (*dto.ConteoEstadosResponse, error) {
	resp := &dto.ConteoEstadosResponse{}
	var err error
	if resp.Activos, err = s.repo.CountByEstado(ctx, model.FormularioActivo); err != nil {
		return nil, err
	}
	if resp.Vencidos, err = s.repo.CountByEstado(ctx, model.FormularioVencido); err != nil {
		return nil, err
	}
	if resp.Cancelados, err = s.repo.CountByEstado(ctx, model.FormularioCancelado); err != nil {
		return nil, err
	}
	if resp.Pendientes, err = s.repo.CountByEstado(ctx, model.FormularioPendiente); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *formularioService) ConteoEstadosPorTienda(ctx context.Context, tienda string) (*dto.ConteoEstadosResponse, error) {
	resp := &dto.ConteoEstadosResponse{}
	var err error
	if resp.Activos, err = s.repo.CountByTiendaYEstado(ctx, tienda, model.FormularioActivo); err != nil {
		return nil, err
	}
	if resp.Vencidos, err = s.repo.CountByTiendaYEstado(ctx, tienda, model.FormularioVencido); err != nil {
		return nil, err
	}
	if resp.Cancelados, err = s.repo.CountByTiendaYEstado(ctx, tienda, model.FormularioCancelado); err != nil {
		return nil, err
	}
	if resp.Pendientes, err = s.repo.CountByTiendaYEstado(ctx, tienda, model.FormularioPendiente); err != nil {
		return nil, err
	}
	return resp, nil
}

// PuedeEditar: administrador and comercial always, without looking the form
// up; tienda only over forms it created, so ownership is by user id, never
// by store code. For tienda a missing form answers false.
func (s *formularioService) PuedeEditar(ctx context.Context, actor model.Actor, id uuid.UUID) bool {
	switch actor.Rol {
	case model.RolAdministrador, model.RolComercial:
		return true
	case model.RolTienda:
		f, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return false
		}
		return f.UsuarioID == actor.ID
	default:
		return false
	}
}

func (s *formularioService) PuedeEliminar(actor model.Actor) bool {
	return actor.Rol == model.RolAdministrador
}

func puedeEditarCargado(actor model.Actor, f *model.Formulario) bool {
	switch actor.Rol {
	case model.RolAdministrador, model.RolComercial:
		return true
	case model.RolTienda:
		return f.UsuarioID == actor.ID
	default:
		return false
	}
}

func parsearVentana(fechaInicio, fechaFin string) (time.Time, time.Time, error) {
	inicio, err := time.ParseInLocation(fechaLayout, fechaInicio, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("fecha_inicio inválida")
	}
	fin, err := time.ParseInLocation(fechaLayout, fechaFin, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("fecha_fin inválida")
	}
	if fin.Before(inicio) {
		return time.Time{}, time.Time{}, apperr.Validation("la fecha de fin no puede ser anterior a la fecha de inicio")
	}
	return inicio, fin, nil
}

func formularioToResponse(f *model.Formulario, actor model.Actor) *dto.FormularioResponse {
	resp := &dto.FormularioResponse{
		ID:              f.ID.String(),
		NombreTienda:    f.NombreTienda,
		CodigoTienda:    f.CodigoTienda,
		ProveedorID:     f.ProveedorID.String(),
		UsuarioID:       f.UsuarioID.String(),
		AreaAsignada:    f.AreaAsignada,
		TipoEspacio:     string(f.TipoEspacio),
		TipoEspacioDesc: f.TipoEspacio.Descripcion(),
		MetrosCuadrados: f.MetrosCuadrados,
		NumeroProductos: f.NumeroProductos,
		FechaInicio:     f.FechaInicio.Format(fechaLayout),
		FechaFin:        f.FechaFin.Format(fechaLayout),
		PrecioAcordado:  f.PrecioAcordado,
		Observaciones:   f.Observaciones,
		Estado:          string(f.Estado),
		FechaCreacion:   f.FechaCreacion.Format(time.RFC3339),
		PuedeEditar:     puedeEditarCargado(actor, f),
	}
	if f.Proveedor != nil {
		resp.ProveedorNombre = f.Proveedor.Nombre
	}
	if f.FechaActualizacion != nil {
		t := f.FechaActualizacion.Format(time.RFC3339)
		resp.FechaActualizacion = &t
	}
	return resp
}

func formulariosToResponse(formularios []model.Formulario, actor model.Actor) []dto.FormularioResponse {
	resp := make([]dto.FormularioResponse, len(formularios))
	for i := range formularios {
		resp[i] = *formularioToResponse(&formularios[i], actor)
	}
	return resp
}
