package tests

// stubs_test.go — in-memory repository stubs shared by the unit tests.
// They mimic the store's observable behavior (ordering included) without
// touching postgres.

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/repository"

	"github.com/google/uuid"
)

var errNotFound = errors.New("record not found")

// ── UsuarioRepository stub ───────────────────────────────────────────────────

type stubUsuarioRepo struct {
	users map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) ListActivos(_ context.Context) ([]model.Usuario, error) {
	result := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		if u.Activo {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUsuarioRepo) ListByRol(_ context.Context, rol model.Rol) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.users {
		if u.Rol == rol && u.Activo {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUsuarioRepo) ListByTienda(_ context.Context, tienda string) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.users {
		if u.Rol == model.RolTienda && u.Activo && u.TiendaAsignada != nil && *u.TiendaAsignada == tienda {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUsuarioRepo) SearchByNombre(_ context.Context, nombre string) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.users {
		if u.Activo && strings.Contains(strings.ToLower(u.NombreCompleto), strings.ToLower(nombre)) {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUsuarioRepo) CountByRol(_ context.Context, rol model.Rol) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Rol == rol && u.Activo {
			n++
		}
	}
	return n, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.users[u.ID]; !ok {
		return errNotFound
	}
	r.users[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── ProveedorRepository stub ─────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, existing := range r.proveedores {
		if existing.RFC == p.RFC {
			return errors.New("unique constraint violation")
		}
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) ExistsByRFC(_ context.Context, rfc string) (bool, error) {
	for _, p := range r.proveedores {
		if p.RFC == rfc {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProveedorRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, p := range r.proveedores {
		if p.Email != nil && *p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	result := make([]model.Proveedor, 0, len(r.proveedores))
	for _, p := range r.proveedores {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nombre < result[j].Nombre })
	return result, nil
}

func (r *stubProveedorRepo) ListByEstado(_ context.Context, estado model.EstadoProveedor) ([]model.Proveedor, error) {
	var result []model.Proveedor
	for _, p := range r.proveedores {
		if p.Estado == estado {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nombre < result[j].Nombre })
	return result, nil
}

func (r *stubProveedorRepo) ListActivosOrdenados(ctx context.Context) ([]model.Proveedor, error) {
	return r.ListByEstado(ctx, model.ProveedorActivo)
}

func (r *stubProveedorRepo) Buscar(_ context.Context, texto string, estado model.EstadoProveedor) ([]model.Proveedor, error) {
	var result []model.Proveedor
	for _, p := range r.proveedores {
		match := strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(texto)) ||
			strings.Contains(strings.ToLower(p.RazonSocial), strings.ToLower(texto))
		if match && (estado == "" || p.Estado == estado) {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProveedorRepo) ListConFormulariosActivos(_ context.Context) ([]model.Proveedor, error) {
	return nil, nil
}

func (r *stubProveedorRepo) CountByEstado(_ context.Context, estado model.EstadoProveedor) (int64, error) {
	var n int64
	for _, p := range r.proveedores {
		if p.Estado == estado {
			n++
		}
	}
	return n, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	if _, ok := r.proveedores[p.ID]; !ok {
		return errNotFound
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.proveedores, id)
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── FormularioRepository stub ────────────────────────────────────────────────

type stubFormularioRepo struct {
	formularios map[uuid.UUID]*model.Formulario
}

func newStubFormularioRepo() *stubFormularioRepo {
	return &stubFormularioRepo{formularios: make(map[uuid.UUID]*model.Formulario)}
}

func (r *stubFormularioRepo) Create(_ context.Context, f *model.Formulario) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.formularios[f.ID] = f
	return nil
}

func (r *stubFormularioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Formulario, error) {
	f, ok := r.formularios[id]
	if !ok {
		return nil, errNotFound
	}
	return f, nil
}

// sortedDesc mirrors the store's newest-created-first listing order.
func (r *stubFormularioRepo) sortedDesc(keep func(*model.Formulario) bool) []model.Formulario {
	var result []model.Formulario
	for _, f := range r.formularios {
		if keep(f) {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FechaCreacion.After(result[j].FechaCreacion)
	})
	return result
}

func (r *stubFormularioRepo) List(_ context.Context) ([]model.Formulario, error) {
	return r.sortedDesc(func(*model.Formulario) bool { return true }), nil
}

func (r *stubFormularioRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool { return f.UsuarioID == usuarioID }), nil
}

func (r *stubFormularioRepo) ListByProveedor(_ context.Context, proveedorID uuid.UUID) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool { return f.ProveedorID == proveedorID }), nil
}

func (r *stubFormularioRepo) ListByEstado(_ context.Context, estado model.EstadoFormulario) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool { return f.Estado == estado }), nil
}

func (r *stubFormularioRepo) ListByTienda(_ context.Context, codigoTienda string) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool { return f.CodigoTienda == codigoTienda }), nil
}

func (r *stubFormularioRepo) ListActivosByTienda(_ context.Context, codigoTienda string) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool {
		return f.CodigoTienda == codigoTienda && f.Estado == model.FormularioActivo
	}), nil
}

func (r *stubFormularioRepo) ListVigentesEnFecha(_ context.Context, fecha time.Time) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool {
		return !f.FechaInicio.After(fecha) && !f.FechaFin.Before(fecha)
	}), nil
}

func (r *stubFormularioRepo) ListByTipoEspacio(_ context.Context, tipo model.TipoEspacio) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool { return f.TipoEspacio == tipo }), nil
}

func (r *stubFormularioRepo) ListProximosAVencer(_ context.Context, hoy, limite time.Time) ([]model.Formulario, error) {
	var result []model.Formulario
	for _, f := range r.formularios {
		if f.Estado == model.FormularioActivo && !f.FechaFin.Before(hoy) && !f.FechaFin.After(limite) {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FechaFin.Before(result[j].FechaFin) })
	return result, nil
}

func (r *stubFormularioRepo) ListByProveedorYPeriodo(_ context.Context, proveedorID uuid.UUID, desde, hasta time.Time) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool {
		return f.ProveedorID == proveedorID && !f.FechaCreacion.Before(desde) && !f.FechaCreacion.After(hasta)
	}), nil
}

func (r *stubFormularioRepo) ListByTiendaYPeriodo(_ context.Context, codigoTienda string, desde, hasta time.Time) ([]model.Formulario, error) {
	return r.sortedDesc(func(f *model.Formulario) bool {
		return f.CodigoTienda == codigoTienda && !f.FechaCreacion.Before(desde) && !f.FechaCreacion.After(hasta)
	}), nil
}

func (r *stubFormularioRepo) CountByEstado(_ context.Context, estado model.EstadoFormulario) (int64, error) {
	var n int64
	for _, f := range r.formularios {
		if f.Estado == estado {
			n++
		}
	}
	return n, nil
}

func (r *stubFormularioRepo) CountByTiendaYEstado(_ context.Context, codigoTienda string, estado model.EstadoFormulario) (int64, error) {
	var n int64
	for _, f := range r.formularios {
		if f.CodigoTienda == codigoTienda && f.Estado == estado {
			n++
		}
	}
	return n, nil
}

func (r *stubFormularioRepo) CountByProveedor(_ context.Context, proveedorID uuid.UUID) (int64, error) {
	var n int64
	for _, f := range r.formularios {
		if f.ProveedorID == proveedorID {
			n++
		}
	}
	return n, nil
}

func (r *stubFormularioRepo) Update(_ context.Context, f *model.Formulario) error {
	if _, ok := r.formularios[f.ID]; !ok {
		return errNotFound
	}
	r.formularios[f.ID] = f
	return nil
}

func (r *stubFormularioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.formularios, id)
	return nil
}

var _ repository.FormularioRepository = (*stubFormularioRepo)(nil)
