package service

import (
	"context"
	"time"

	"github.com/alexpardox/mercaproject/internal/apperr"
	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UsuarioService interface {
	Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context) ([]dto.UsuarioResponse, error)
	ListarPorRol(ctx context.Context, rol model.Rol) ([]dto.UsuarioResponse, error)
	ListarPorTienda(ctx context.Context, tienda string) ([]dto.UsuarioResponse, error)
	BuscarPorNombre(ctx context.Context, nombre string) ([]dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	CambiarPassword(ctx context.Context, id uuid.UUID, req dto.CambiarPasswordRequest) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type usuarioService struct {
	repo repository.UsuarioRepository
}

func NewUsuarioService(repo repository.UsuarioRepository) UsuarioService {
	return &usuarioService{repo: repo}
}

func (s *usuarioService) Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if taken, err := s.repo.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("el nombre de usuario ya está registrado")
	}
	if taken, err := s.repo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("el email ya está registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.Usuario{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   string(hash),
		NombreCompleto: req.NombreCompleto,
		Rol:            model.Rol(req.Rol),
		TiendaAsignada: req.TiendaAsignada,
		Activo:         true,
		FechaCreacion:  time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return usuarioToResponse(u), nil
}

func (s *usuarioService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("usuario no encontrado")
	}
	return usuarioToResponse(u), nil
}

func (s *usuarioService) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	return usuariosToResponse(usuarios), nil
}

func (s *usuarioService) ListarPorRol(ctx context.Context, rol model.Rol) ([]dto.UsuarioResponse, error) {
	if !rol.Valida() {
		return nil, apperr.Validation("rol desconocido")
	}
	usuarios, err := s.repo.ListByRol(ctx, rol)
	if err != nil {
		return nil, err
	}
	return usuariosToResponse(usuarios), nil
}

func (s *usuarioService) ListarPorTienda(ctx context.Context, tienda string) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.ListByTienda(ctx, tienda)
	if err != nil {
		return nil, err
	}
	return usuariosToResponse(usuarios), nil
}

func (s *usuarioService) BuscarPorNombre(ctx context.Context, nombre string) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.SearchByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	return usuariosToResponse(usuarios), nil
}

// Actualizar modifies profile fields. Username never changes and the
// password only changes through CambiarPassword.
func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("usuario no encontrado")
	}
	if req.Email != "" && req.Email != u.Email {
		if taken, err := s.repo.ExistsByEmail(ctx, req.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("el email ya está registrado")
		}
		u.Email = req.Email
	}
	if req.NombreCompleto != "" {
		u.NombreCompleto = req.NombreCompleto
	}
	if req.Rol != "" {
		u.Rol = model.Rol(req.Rol)
	}
	if req.TiendaAsignada != nil {
		u.TiendaAsignada = req.TiendaAsignada
	}
	if req.Activo != nil {
		u.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return usuarioToResponse(u), nil
}

func (s *usuarioService) CambiarPassword(ctx context.Context, id uuid.UUID, req dto.CambiarPasswordRequest) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.NotFound("usuario no encontrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.repo.Update(ctx, u)
}

func (s *usuarioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.setActivo(ctx, id, false)
}

func (s *usuarioService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.setActivo(ctx, id, true)
}

func (s *usuarioService) setActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.NotFound("usuario no encontrado")
	}
	u.Activo = activo
	return s.repo.Update(ctx, u)
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	resp := &dto.UsuarioResponse{
		ID:             u.ID.String(),
		Username:       u.Username,
		Email:          u.Email,
		NombreCompleto: u.NombreCompleto,
		Rol:            string(u.Rol),
		TiendaAsignada: u.TiendaAsignada,
		Activo:         u.Activo,
	}
	if u.FechaUltimoAcceso != nil {
		s := u.FechaUltimoAcceso.Format(time.RFC3339)
		resp.FechaUltimoAcceso = &s
	}
	return resp
}

func usuariosToResponse(usuarios []model.Usuario) []dto.UsuarioResponse {
	resp := make([]dto.UsuarioResponse, len(usuarios))
	for i := range usuarios {
		resp[i] = *usuarioToResponse(&usuarios[i])
	}
	return resp
}
