package service

import (
	"context"

	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/repository"
)

type DashboardService interface {
	Admin(ctx context.Context, actor model.Actor) (*dto.AdminDashboardResponse, error)
	Comercial(ctx context.Context, actor model.Actor) (*dto.ComercialDashboardResponse, error)
	Tienda(ctx context.Context, actor model.Actor) (*dto.TiendaDashboardResponse, error)
}

type dashboardService struct {
	formularios   FormularioService
	proveedores   ProveedorService
	proveedorRepo repository.ProveedorRepository
	usuarioRepo   repository.UsuarioRepository
	diasAviso     int
}

func NewDashboardService(
	formularios FormularioService,
	proveedores ProveedorService,
	proveedorRepo repository.ProveedorRepository,
	usuarioRepo repository.UsuarioRepository,
	diasAviso int,
) DashboardService {
	return &dashboardService{
		formularios:   formularios,
		proveedores:   proveedores,
		proveedorRepo: proveedorRepo,
		usuarioRepo:   usuarioRepo,
		diasAviso:     diasAviso,
	}
}

func (s *dashboardService) Admin(ctx context.Context, actor model.Actor) (*dto.AdminDashboardResponse, error) {
	conteo, err := s.formularios.ConteoEstados(ctx)
	if err != nil {
		return nil, err
	}
	activos, err := s.proveedorRepo.CountByEstado(ctx, model.ProveedorActivo)
	if err != nil {
		return nil, err
	}
	inactivos, err := s.proveedorRepo.CountByEstado(ctx, model.ProveedorInactivo)
	if err != nil {
		return nil, err
	}
	suspendidos, err := s.proveedorRepo.CountByEstado(ctx, model.ProveedorSuspendido)
	if err != nil {
		return nil, err
	}
	usuarios, err := s.usuarioRepo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	porRol := make(map[string]int64, 3)
	for _, rol := range []model.Rol{model.RolAdministrador, model.RolComercial, model.RolTienda} {
		n, err := s.usuarioRepo.CountByRol(ctx, rol)
		if err != nil {
			return nil, err
		}
		porRol[string(rol)] = n
	}
	return &dto.AdminDashboardResponse{
		Formularios:            *conteo,
		ProveedoresActivos:     activos,
		ProveedoresInactivos:   inactivos,
		ProveedoresSuspendidos: suspendidos,
		UsuariosActivos:        len(usuarios),
		UsuariosPorRol:         porRol,
	}, nil
}

func (s *dashboardService) Comercial(ctx context.Context, actor model.Actor) (*dto.ComercialDashboardResponse, error) {
	conteo, err := s.formularios.ConteoEstados(ctx)
	if err != nil {
		return nil, err
	}
	proximos, err := s.formularios.ProximosAVencer(ctx, actor, s.diasAviso)
	if err != nil {
		return nil, err
	}
	conActivos, err := s.proveedores.ConFormulariosActivos(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ComercialDashboardResponse{
		Formularios:                      *conteo,
		ProximosAVencer:                  proximos,
		ProveedoresConFormulariosActivos: conActivos,
	}, nil
}

// Tienda scopes everything to the actor's tienda_asignada. A tienda user
// without an assigned store sees an empty dashboard rather than an error.
func (s *dashboardService) Tienda(ctx context.Context, actor model.Actor) (*dto.TiendaDashboardResponse, error) {
	tienda := ""
	if actor.TiendaAsignada != nil {
		tienda = *actor.TiendaAsignada
	}
	resp := &dto.TiendaDashboardResponse{Tienda: tienda}
	if tienda == "" {
		resp.FormulariosActivos = []dto.FormularioResponse{}
		resp.ProximosAVencer = []dto.FormularioResponse{}
		return resp, nil
	}

	conteo, err := s.formularios.ConteoEstadosPorTienda(ctx, tienda)
	if err != nil {
		return nil, err
	}
	activos, err := s.formularios.ActivosPorTienda(ctx, actor, tienda)
	if err != nil {
		return nil, err
	}
	proximos, err := s.formularios.ProximosAVencer(ctx, actor, s.diasAviso)
	if err != nil {
		return nil, err
	}
	// Cross-store expirations are not this dashboard's business.
	propios := make([]dto.FormularioResponse, 0, len(proximos))
	for _, f := range proximos {
		if f.CodigoTienda == tienda {
			propios = append(propios, f)
		}
	}

	resp.Formularios = *conteo
	resp.FormulariosActivos = activos
	resp.ProximosAVencer = propios
	return resp, nil
}
