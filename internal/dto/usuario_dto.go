package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarUsuarioRequest struct {
	Username       string  `json:"username"        validate:"required,min=3,max=50"`
	Email          string  `json:"email"           validate:"required,email"`
	Password       string  `json:"password"        validate:"required,min=6"`
	NombreCompleto string  `json:"nombre_completo" validate:"required"`
	Rol            string  `json:"rol"             validate:"required,oneof=administrador comercial tienda"`
	TiendaAsignada *string `json:"tienda_asignada"`
}

// ActualizarUsuarioRequest never carries username or password: the former is
// immutable, the latter changes only through CambiarPassword.
type ActualizarUsuarioRequest struct {
	Email          string  `json:"email"           validate:"omitempty,email"`
	NombreCompleto string  `json:"nombre_completo"`
	Rol            string  `json:"rol"             validate:"omitempty,oneof=administrador comercial tienda"`
	TiendaAsignada *string `json:"tienda_asignada"`
	Activo         *bool   `json:"activo"`
}

type CambiarPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID                string  `json:"id"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	NombreCompleto    string  `json:"nombre_completo"`
	Rol               string  `json:"rol"`
	TiendaAsignada    *string `json:"tienda_asignada,omitempty"`
	Activo            bool    `json:"activo"`
	FechaUltimoAcceso *string `json:"fecha_ultimo_acceso,omitempty"`
}
