package model

import (
	"time"

	"github.com/google/uuid"
)

// EstadoProveedor is the supplier lifecycle status.
// Any state is reachable from any other via an explicit operation.
type EstadoProveedor string

const (
	ProveedorActivo     EstadoProveedor = "ACTIVO"
	ProveedorInactivo   EstadoProveedor = "INACTIVO"
	ProveedorSuspendido EstadoProveedor = "SUSPENDIDO"
)

// Proveedor represents a supplier with commercial data.
// RFC format: 3-4 uppercase letters/&/Ñ, 6 digits, 3 alphanumerics.
type Proveedor struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre             string    `gorm:"not null"`
	RFC                string    `gorm:"column:rfc;uniqueIndex;not null;size:13"`
	RazonSocial        string    `gorm:"not null;size:200"`
	Email              *string   `gorm:"uniqueIndex"`
	Telefono           *string   `gorm:"size:10"`
	Direccion          *string   `gorm:"size:500"`
	ContactoPrincipal  *string   `gorm:"size:100"`
	Estado             EstadoProveedor `gorm:"type:varchar(20);not null;default:'ACTIVO'"`
	FechaRegistro      time.Time
	FechaActualizacion *time.Time

	Formularios []Formulario `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }
