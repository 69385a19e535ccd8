package repository

import (
	"context"

	"github.com/alexpardox/mercaproject/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListActivos(ctx context.Context) ([]model.Usuario, error)
	ListByRol(ctx context.Context, rol model.Rol) ([]model.Usuario, error)
	ListByTienda(ctx context.Context, tienda string) ([]model.Usuario, error)
	SearchByNombre(ctx context.Context, nombre string) ([]model.Usuario, error)
	CountByRol(ctx context.Context, rol model.Rol) (int64, error)
	Update(ctx context.Context, u *model.Usuario) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error
	return &u, err
}

func (r *usuarioRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *usuarioRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *usuarioRepo) ListActivos(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre_completo").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) ListByRol(ctx context.Context, rol model.Rol) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Where("rol = ? AND activo = true", rol).Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) ListByTienda(ctx context.Context, tienda string) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).
		Where("rol = ? AND tienda_asignada = ? AND activo = true", model.RolTienda, tienda).
		Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) SearchByNombre(ctx context.Context, nombre string) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre_completo) LIKE LOWER(?) AND activo = true", "%"+nombre+"%").
		Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) CountByRol(ctx context.Context, rol model.Rol) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("rol = ? AND activo = true", rol).Count(&n).Error
	return n, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}
