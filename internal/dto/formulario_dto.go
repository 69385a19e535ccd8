package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarFormularioRequest accepts an estado field but registration always
// forces ACTIVO — the field exists so that clients sending it are not
// rejected, not so that it is honored.
type RegistrarFormularioRequest struct {
	NombreTienda    string           `json:"nombre_tienda"    validate:"required,max=100"`
	CodigoTienda    string           `json:"codigo_tienda"    validate:"required,max=20"`
	ProveedorID     string           `json:"proveedor_id"     validate:"required,uuid"`
	AreaAsignada    string           `json:"area_asignada"    validate:"required,max=100"`
	TipoEspacio     string           `json:"tipo_espacio"     validate:"required,oneof=GONDOLA EXHIBIDOR ISLA ENTRADA CAJA PASILLO REFRIGERADOR CONGELADOR OTRO"`
	MetrosCuadrados *decimal.Decimal `json:"metros_cuadrados" validate:"omitempty,min=0"`
	NumeroProductos *int             `json:"numero_productos" validate:"omitempty,min=0"`
	FechaInicio     string           `json:"fecha_inicio"     validate:"required,datetime=2006-01-02"`
	FechaFin        string           `json:"fecha_fin"        validate:"required,datetime=2006-01-02"`
	PrecioAcordado  *decimal.Decimal `json:"precio_acordado"  validate:"omitempty,min=0"`
	Observaciones   *string          `json:"observaciones"    validate:"omitempty,max=1000"`
	Estado          string           `json:"estado"           validate:"omitempty,oneof=PENDIENTE_APROBACION ACTIVO VENCIDO CANCELADO"`
}

// ActualizarFormularioRequest: estado is accepted verbatim here — update does
// not force ACTIVO and does not re-validate the start-in-past rule.
type ActualizarFormularioRequest struct {
	NombreTienda    string           `json:"nombre_tienda"    validate:"required,max=100"`
	CodigoTienda    string           `json:"codigo_tienda"    validate:"required,max=20"`
	ProveedorID     string           `json:"proveedor_id"     validate:"required,uuid"`
	AreaAsignada    string           `json:"area_asignada"    validate:"required,max=100"`
	TipoEspacio     string           `json:"tipo_espacio"     validate:"required,oneof=GONDOLA EXHIBIDOR ISLA ENTRADA CAJA PASILLO REFRIGERADOR CONGELADOR OTRO"`
	MetrosCuadrados *decimal.Decimal `json:"metros_cuadrados" validate:"omitempty,min=0"`
	NumeroProductos *int             `json:"numero_productos" validate:"omitempty,min=0"`
	FechaInicio     string           `json:"fecha_inicio"     validate:"required,datetime=2006-01-02"`
	FechaFin        string           `json:"fecha_fin"        validate:"required,datetime=2006-01-02"`
	PrecioAcordado  *decimal.Decimal `json:"precio_acordado"  validate:"omitempty,min=0"`
	Observaciones   *string          `json:"observaciones"    validate:"omitempty,max=1000"`
	Estado          string           `json:"estado"           validate:"required,oneof=PENDIENTE_APROBACION ACTIVO VENCIDO CANCELADO"`
}

// FormularioFiltro carries the optional list filters; absent fields impose no
// constraint. Dates bound the creation timestamp, inclusive.
type FormularioFiltro struct {
	Tienda      string `form:"tienda"`
	ProveedorID string `form:"proveedor"      validate:"omitempty,uuid"`
	Estado      string `form:"estado"         validate:"omitempty,oneof=PENDIENTE_APROBACION ACTIVO VENCIDO CANCELADO"`
	FechaInicio string `form:"fecha_inicio"   validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"      validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FormularioResponse struct {
	ID                 string           `json:"id"`
	NombreTienda       string           `json:"nombre_tienda"`
	CodigoTienda       string           `json:"codigo_tienda"`
	ProveedorID        string           `json:"proveedor_id"`
	ProveedorNombre    string           `json:"proveedor_nombre,omitempty"`
	UsuarioID          string           `json:"usuario_id"`
	AreaAsignada       string           `json:"area_asignada"`
	TipoEspacio        string           `json:"tipo_espacio"`
	TipoEspacioDesc    string           `json:"tipo_espacio_descripcion"`
	MetrosCuadrados    *decimal.Decimal `json:"metros_cuadrados,omitempty"`
	NumeroProductos    *int             `json:"numero_productos,omitempty"`
	FechaInicio        string           `json:"fecha_inicio"`
	FechaFin           string           `json:"fecha_fin"`
	PrecioAcordado     *decimal.Decimal `json:"precio_acordado,omitempty"`
	Observaciones      *string          `json:"observaciones,omitempty"`
	Estado             string           `json:"estado"`
	FechaCreacion      string           `json:"fecha_creacion"`
	FechaActualizacion *string          `json:"fecha_actualizacion,omitempty"`
	PuedeEditar        bool             `json:"puede_editar"`
}

type ListaFormulariosResponse struct {
	Formularios []FormularioResponse `json:"formularios"`
	Total       int                  `json:"total"`
}

type BarridoResponse struct {
	Vencidos int `json:"vencidos"`
}

type ConteoEstadosResponse struct {
	Activos    int64 `json:"activos"`
	Vencidos   int64 `json:"vencidos"`
	Cancelados int64 `json:"cancelados"`
	Pendientes int64 `json:"pendientes"`
}
