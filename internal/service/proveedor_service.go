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

type ProveedorService interface {
	Registrar(ctx context.Context, req dto.RegistrarProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, filtro dto.ProveedorFiltro) ([]dto.ProveedorResponse, error)
	ListarActivos(ctx context.Context) ([]dto.ProveedorResponse, error)
	ConFormulariosActivos(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Activar(ctx context.Context, id uuid.UUID) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Suspender(ctx context.Context, id uuid.UUID) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	RFCDisponible(ctx context.Context, rfc string) (bool, error)
	EmailDisponible(ctx context.Context, email string) (bool, error)
}

type proveedorService struct {
	repo           repository.ProveedorRepository
	formularioRepo repository.FormularioRepository
}

func NewProveedorService(repo repository.ProveedorRepository, formularioRepo repository.FormularioRepository) ProveedorService {
	return &proveedorService{repo: repo, formularioRepo: formularioRepo}
}

func (s *proveedorService) Registrar(ctx context.Context, req dto.RegistrarProveedorRequest) (*dto.ProveedorResponse, error) {
	if taken, err := s.repo.ExistsByRFC(ctx, req.RFC); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("el RFC ya está registrado")
	}
	// Email uniqueness only applies when the field carries a value.
	if req.Email != nil && *req.Email != "" {
		if taken, err := s.repo.ExistsByEmail(ctx, *req.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("el email ya está registrado")
		}
	}

	p := &model.Proveedor{
		Nombre:            req.Nombre,
		RFC:               req.RFC,
		RazonSocial:       req.RazonSocial,
		Email:             req.Email,
		Telefono:          req.Telefono,
		Direccion:         req.Direccion,
		ContactoPrincipal: req.ContactoPrincipal,
		Estado:            model.ProveedorActivo,
		FechaRegistro:     time.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("proveedor no encontrado")
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context, filtro dto.ProveedorFiltro) ([]dto.ProveedorResponse, error) {
	var (
		proveedores []model.Proveedor
		err         error
	)
	switch {
	case filtro.Buscar != "":
		proveedores, err = s.repo.Buscar(ctx, filtro.Buscar, model.EstadoProveedor(filtro.Estado))
	case filtro.Estado != "":
		proveedores, err = s.repo.ListByEstado(ctx, model.EstadoProveedor(filtro.Estado))
	default:
		proveedores, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return proveedoresToResponse(proveedores), nil
}

// ListarActivos feeds the supplier selector when a form is registered:
// only active suppliers, ordered by nombre.
func (s *proveedorService) ListarActivos(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.ListActivosOrdenados(ctx)
	if err != nil {
		return nil, err
	}
	return proveedoresToResponse(proveedores), nil
}

func (s *proveedorService) ConFormulariosActivos(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.ListConFormulariosActivos(ctx)
	if err != nil {
		return nil, err
	}
	return proveedoresToResponse(proveedores), nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("proveedor no encontrado")
	}
	// Uniqueness is re-checked only for fields that actually change.
	if req.RFC != p.RFC {
		if taken, err := s.repo.ExistsByRFC(ctx, req.RFC); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("el RFC ya está registrado")
		}
	}
	if req.Email != nil && *req.Email != "" && (p.Email == nil || *req.Email != *p.Email) {
		if taken, err := s.repo.ExistsByEmail(ctx, *req.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("el email ya está registrado")
		}
	}

	p.Nombre = req.Nombre
	p.RFC = req.RFC
	p.RazonSocial = req.RazonSocial
	p.Email = req.Email
	p.Telefono = req.Telefono
	p.Direccion = req.Direccion
	p.ContactoPrincipal = req.ContactoPrincipal
	if req.Estado != "" {
		p.Estado = model.EstadoProveedor(req.Estado)
	}
	ahora := time.Now()
	p.FechaActualizacion = &ahora

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Activar(ctx context.Context, id uuid.UUID) error {
	return s.cambiarEstado(ctx, id, model.ProveedorActivo)
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.cambiarEstado(ctx, id, model.ProveedorInactivo)
}

func (s *proveedorService) Suspender(ctx context.Context, id uuid.UUID) error {
	return s.cambiarEstado(ctx, id, model.ProveedorSuspendido)
}

func (s *proveedorService) cambiarEstado(ctx context.Context, id uuid.UUID, estado model.EstadoProveedor) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.NotFound("proveedor no encontrado")
	}
	p.Estado = estado
	ahora := time.Now()
	p.FechaActualizacion = &ahora
	return s.repo.Update(ctx, p)
}

// Eliminar removes a supplier only when no form references it. The check is
// a live count against the store, never the association loaded in memory.
func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperr.NotFound("proveedor no encontrado")
	}
	n, err := s.formularioRepo.CountByProveedor(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("el proveedor tiene formularios asociados y no puede eliminarse")
	}
	return s.repo.Delete(ctx, id)
}

func (s *proveedorService) RFCDisponible(ctx context.Context, rfc string) (bool, error) {
	taken, err := s.repo.ExistsByRFC(ctx, rfc)
	return !taken, err
}

func (s *proveedorService) EmailDisponible(ctx context.Context, email string) (bool, error) {
	taken, err := s.repo.ExistsByEmail(ctx, email)
	return !taken, err
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	resp := &dto.ProveedorResponse{
		ID:                p.ID.String(),
		Nombre:            p.Nombre,
		RFC:               p.RFC,
		RazonSocial:       p.RazonSocial,
		Email:             p.Email,
		Telefono:          p.Telefono,
		Direccion:         p.Direccion,
		ContactoPrincipal: p.ContactoPrincipal,
		Estado:            string(p.Estado),
		FechaRegistro:     p.FechaRegistro.Format(time.RFC3339),
	}
	if p.FechaActualizacion != nil {
		s := p.FechaActualizacion.Format(time.RFC3339)
		resp.FechaActualizacion = &s
	}
	return resp
}

func proveedoresToResponse(proveedores []model.Proveedor) []dto.ProveedorResponse {
	resp := make([]dto.ProveedorResponse, len(proveedores))
	for i := range proveedores {
		resp[i] = *proveedorToResponse(&proveedores[i])
	}
	return resp
}
