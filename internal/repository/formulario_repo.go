package repository

import (
	"context"
	"time"

	"github.com/alexpardox/mercaproject/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FormularioRepository interface {
	Create(ctx context.Context, f *model.Formulario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Formulario, error)
	List(ctx context.Context) ([]model.Formulario, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Formulario, error)
	ListByProveedor(ctx context.Context, proveedorID uuid.UUID) ([]model.Formulario, error)
	ListByEstado(ctx context.Context, estado model.EstadoFormulario) ([]model.Formulario, error)
	ListByTienda(ctx context.Context, codigoTienda string) ([]model.Formulario, error)
	ListActivosByTienda(ctx context.Context, codigoTienda string) ([]model.Formulario, error)
	ListVigentesEnFecha(ctx context.Context, fecha time.Time) ([]model.Formulario, error)
	ListByTipoEspacio(ctx context.Context, tipo model.TipoEspacio) ([]model.Formulario, error)
	ListProximosAVencer(ctx context.Context, hoy, limite time.Time) ([]model.Formulario, error)
	ListByProveedorYPeriodo(ctx context.Context, proveedorID uuid.UUID, desde, hasta time.Time) ([]model.Formulario, error)
	ListByTiendaYPeriodo(ctx context.Context, codigoTienda string, desde, hasta time.Time) ([]model.Formulario, error)
	CountByEstado(ctx context.Context, estado model.EstadoFormulario) (int64, error)
	CountByTiendaYEstado(ctx context.Context, codigoTienda string, estado model.EstadoFormulario) (int64, error)
	CountByProveedor(ctx context.Context, proveedorID uuid.UUID) (int64, error)
	Update(ctx context.Context, f *model.Formulario) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type formularioRepo struct{ db *gorm.DB }

func NewFormularioRepository(db *gorm.DB) FormularioRepository { return &formularioRepo{db: db} }

// base preloads the associations every listing needs for display.
func (r *formularioRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Proveedor").Preload("Usuario")
}

func (r *formularioRepo) Create(ctx context.Context, f *model.Formulario) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *formularioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Formulario, error) {
	var f model.Formulario
	err := r.base(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *formularioRepo) List(ctx context.Context) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).Where("usuario_id = ?", usuarioID).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListByProveedor(ctx context.Context, proveedorID uuid.UUID) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).Where("proveedor_id = ?", proveedorID).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListByEstado(ctx context.Context, estado model.EstadoFormulario) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).Where("estado = ?", estado).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListByTienda(ctx context.Context, codigoTienda string) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).Where("codigo_tienda = ?", codigoTienda).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListActivosByTienda(ctx context.Context, codigoTienda string) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).
		Where("codigo_tienda = ? AND estado = ?", codigoTienda, model.FormularioActivo).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

// ListVigentesEnFecha returns forms whose date window covers the given day.
func (r *formularioRepo) ListVigentesEnFecha(ctx context.Context, fecha time.Time) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).
		Where("fecha_inicio <= ? AND fecha_fin >= ?", fecha, fecha).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListByTipoEspacio(ctx context.Context, tipo model.TipoEspacio) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).Where("tipo_espacio = ?", tipo).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

// ListProximosAVencer returns ACTIVO forms ending within [hoy, limite],
// soonest first.
func (r *formularioRepo) ListProximosAVencer(ctx context.Context, hoy, limite time.Time) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).
		Where("estado = ? AND fecha_fin BETWEEN ? AND ?", model.FormularioActivo, hoy, limite).
		Order("fecha_fin ASC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListByProveedorYPeriodo(ctx context.Context, proveedorID uuid.UUID, desde, hasta time.Time) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).
		Where("proveedor_id = ? AND fecha_creacion BETWEEN ? AND ?", proveedorID, desde, hasta).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) ListByTiendaYPeriodo(ctx context.Context, codigoTienda string, desde, hasta time.Time) ([]model.Formulario, error) {
	var formularios []model.Formulario
	err := r.base(ctx).
		Where("codigo_tienda = ? AND fecha_creacion BETWEEN ? AND ?", codigoTienda, desde, hasta).
		Order("fecha_creacion DESC").Find(&formularios).Error
	return formularios, err
}

func (r *formularioRepo) CountByEstado(ctx context.Context, estado model.EstadoFormulario) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Formulario{}).Where("estado = ?", estado).Count(&n).Error
	return n, err
}

func (r *formularioRepo) CountByTiendaYEstado(ctx context.Context, codigoTienda string, estado model.EstadoFormulario) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Formulario{}).
		Where("codigo_tienda = ? AND estado = ?", codigoTienda, estado).Count(&n).Error
	return n, err
}

// CountByProveedor is the live association check backing supplier deletion —
// it always hits the store, never a loaded struct.
func (r *formularioRepo) CountByProveedor(ctx context.Context, proveedorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Formulario{}).
		Where("proveedor_id = ?", proveedorID).Count(&n).Error
	return n, err
}

func (r *formularioRepo) Update(ctx context.Context, f *model.Formulario) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *formularioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Formulario{}, "id = ?", id).Error
}
