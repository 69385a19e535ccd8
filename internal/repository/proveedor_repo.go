package repository

import (
	"context"

	"github.com/alexpardox/mercaproject/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	ExistsByRFC(ctx context.Context, rfc string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]model.Proveedor, error)
	ListByEstado(ctx context.Context, estado model.EstadoProveedor) ([]model.Proveedor, error)
	ListActivosOrdenados(ctx context.Context) ([]model.Proveedor, error)
	Buscar(ctx context.Context, texto string, estado model.EstadoProveedor) ([]model.Proveedor, error)
	ListConFormulariosActivos(ctx context.Context) ([]model.Proveedor, error)
	CountByEstado(ctx context.Context, estado model.EstadoProveedor) (int64, error)
	Update(ctx context.Context, p *model.Proveedor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *proveedorRepo) ExistsByRFC(ctx context.Context, rfc string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("rfc = ?", rfc).Count(&n).Error
	return n > 0, err
}

func (r *proveedorRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Order("nombre").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) ListByEstado(ctx context.Context, estado model.EstadoProveedor) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Where("estado = ?", estado).Order("nombre").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) ListActivosOrdenados(ctx context.Context) ([]model.Proveedor, error) {
	return r.ListByEstado(ctx, model.ProveedorActivo)
}

// Buscar matches the text against nombre and razon social, case-insensitive,
// optionally constrained to an estado.
func (r *proveedorRepo) Buscar(ctx context.Context, texto string, estado model.EstadoProveedor) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	q := r.db.WithContext(ctx).
		Where("(LOWER(nombre) LIKE LOWER(?) OR LOWER(razon_social) LIKE LOWER(?))",
			"%"+texto+"%", "%"+texto+"%")
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Order("nombre").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) ListConFormulariosActivos(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).
		Distinct("proveedores.*").
		Joins("JOIN formularios ON formularios.proveedor_id = proveedores.id").
		Where("formularios.estado = ?", model.FormularioActivo).
		Order("proveedores.nombre").
		Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) CountByEstado(ctx context.Context, estado model.EstadoProveedor) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("estado = ?", estado).Count(&n).Error
	return n, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Proveedor{}, "id = ?", id).Error
}
