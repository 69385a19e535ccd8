package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarProveedorRequest struct {
	Nombre            string  `json:"nombre"             validate:"required,max=100"`
	RFC               string  `json:"rfc"                validate:"required,rfc"`
	RazonSocial       string  `json:"razon_social"       validate:"required,max=200"`
	Email             *string `json:"email"              validate:"omitempty,email"`
	Telefono          *string `json:"telefono"           validate:"omitempty,len=10,numeric"`
	Direccion         *string `json:"direccion"          validate:"omitempty,max=500"`
	ContactoPrincipal *string `json:"contacto_principal" validate:"omitempty,max=100"`
}

// ActualizarProveedorRequest carries the full mutable field set, estado
// included — status changes can ride a regular update besides the explicit
// activar/desactivar/suspender operations.
type ActualizarProveedorRequest struct {
	Nombre            string  `json:"nombre"             validate:"required,max=100"`
	RFC               string  `json:"rfc"                validate:"required,rfc"`
	RazonSocial       string  `json:"razon_social"       validate:"required,max=200"`
	Email             *string `json:"email"              validate:"omitempty,email"`
	Telefono          *string `json:"telefono"           validate:"omitempty,len=10,numeric"`
	Direccion         *string `json:"direccion"          validate:"omitempty,max=500"`
	ContactoPrincipal *string `json:"contacto_principal" validate:"omitempty,max=100"`
	Estado            string  `json:"estado"             validate:"omitempty,oneof=ACTIVO INACTIVO SUSPENDIDO"`
}

type ProveedorFiltro struct {
	Buscar string `form:"buscar"`
	Estado string `form:"estado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID                 string  `json:"id"`
	Nombre             string  `json:"nombre"`
	RFC                string  `json:"rfc"`
	RazonSocial        string  `json:"razon_social"`
	Email              *string `json:"email,omitempty"`
	Telefono           *string `json:"telefono,omitempty"`
	Direccion          *string `json:"direccion,omitempty"`
	ContactoPrincipal  *string `json:"contacto_principal,omitempty"`
	Estado             string  `json:"estado"`
	FechaRegistro      string  `json:"fecha_registro"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

type DisponibilidadResponse struct {
	Disponible bool `json:"disponible"`
}
