package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoFormulario is the space-request lifecycle status.
// PENDIENTE_APROBACION is the column default but no operation currently
// transitions into it: registration forces ACTIVO directly.
type EstadoFormulario string

const (
	FormularioPendiente EstadoFormulario = "PENDIENTE_APROBACION"
	FormularioActivo    EstadoFormulario = "ACTIVO"
	FormularioVencido   EstadoFormulario = "VENCIDO"
	FormularioCancelado EstadoFormulario = "CANCELADO"
)

// TipoEspacio enumerates the kinds of in-store promotional space.
type TipoEspacio string

const (
	EspacioGondola      TipoEspacio = "GONDOLA"
	EspacioExhibidor    TipoEspacio = "EXHIBIDOR"
	EspacioIsla         TipoEspacio = "ISLA"
	EspacioEntrada      TipoEspacio = "ENTRADA"
	EspacioCaja         TipoEspacio = "CAJA"
	EspacioPasillo      TipoEspacio = "PASILLO"
	EspacioRefrigerador TipoEspacio = "REFRIGERADOR"
	EspacioCongelador   TipoEspacio = "CONGELADOR"
	EspacioOtro         TipoEspacio = "OTRO"
)

var descripcionesEspacio = map[TipoEspacio]string{
	EspacioGondola:      "Góndola",
	EspacioExhibidor:    "Exhibidor",
	EspacioIsla:         "Isla central",
	EspacioEntrada:      "Entrada de tienda",
	EspacioCaja:         "Área de caja",
	EspacioPasillo:      "Pasillo principal",
	EspacioRefrigerador: "Refrigerador",
	EspacioCongelador:   "Congelador",
	EspacioOtro:         "Otro",
}

// Descripcion returns the display label for the space type.
func (t TipoEspacio) Descripcion() string { return descripcionesEspacio[t] }

// Formulario is a promotional space request placed by a store against a
// supplier for a date window.
type Formulario struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreTienda    string    `gorm:"not null;size:100"`
	CodigoTienda    string    `gorm:"index;not null;size:20"`
	ProveedorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID       uuid.UUID `gorm:"type:uuid;not null;index"`
	AreaAsignada    string    `gorm:"not null;size:100"`
	TipoEspacio     TipoEspacio `gorm:"type:varchar(20);not null"`
	MetrosCuadrados *decimal.Decimal `gorm:"type:decimal(10,2)"`
	NumeroProductos *int
	FechaInicio     time.Time `gorm:"type:date;not null"`
	FechaFin        time.Time `gorm:"type:date;not null"`
	PrecioAcordado  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observaciones   *string          `gorm:"size:1000"`
	Estado          EstadoFormulario `gorm:"type:varchar(25);not null;default:'PENDIENTE_APROBACION'"`
	FechaCreacion   time.Time        `gorm:"not null"`
	FechaActualizacion *time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
	Usuario   *Usuario   `gorm:"foreignKey:UsuarioID"`
}

func (Formulario) TableName() string { return "formularios" }

// RevisarVencimiento is the single named expiry re-check: a form whose end
// date is already past is forced to VENCIDO, regardless of the status the
// caller set. Every update-path save runs this step. The comparison is by
// calendar day: the date column comes back from the driver at UTC midnight
// while hoy is local midnight, so comparing the instants directly would
// expire a form on its own end date in any zone west of UTC. Returns true
// when the status changed.
func (f *Formulario) RevisarVencimiento(hoy time.Time) bool {
	if f.Estado == FormularioVencido {
		return false
	}
	if diaDe(hoy).After(diaDe(f.FechaFin)) {
		f.Estado = FormularioVencido
		return true
	}
	return false
}

// diaDe drops the time of day and the zone, keeping only the calendar date.
func diaDe(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
