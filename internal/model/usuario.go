package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// TiendaAsignada is only meaningful for Rol = tienda; nil for the rest.
type Usuario struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username          string    `gorm:"uniqueIndex;not null"`
	Email             string    `gorm:"uniqueIndex;not null"`
	PasswordHash      string    `gorm:"not null"`
	NombreCompleto    string    `gorm:"not null"`
	Rol               Rol       `gorm:"type:varchar(20);not null"`
	TiendaAsignada    *string
	Activo            bool `gorm:"not null;default:true"`
	FechaCreacion     time.Time
	FechaUltimoAcceso *time.Time

	Formularios []Formulario `gorm:"foreignKey:UsuarioID"`
}

func (Usuario) TableName() string { return "usuarios" }

// Actor is the request principal derived from the session token.
// It is threaded explicitly into every authorization check — never kept
// as ambient state.
type Actor struct {
	ID             uuid.UUID
	Rol            Rol
	TiendaAsignada *string
}

// ActorDe builds the principal for a stored user.
func ActorDe(u *Usuario) Actor {
	return Actor{ID: u.ID, Rol: u.Rol, TiendaAsignada: u.TiendaAsignada}
}
