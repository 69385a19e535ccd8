package model

// Rol is the access level of a user. Three fixed roles; there is no
// per-permission granularity beyond them.
type Rol string

const (
	RolAdministrador Rol = "administrador"
	RolComercial     Rol = "comercial"
	RolTienda        Rol = "tienda"
)

var authorities = map[Rol]string{
	RolAdministrador: "ROLE_ADMIN",
	RolComercial:     "ROLE_COMERCIAL",
	RolTienda:        "ROLE_TIENDA",
}

// Authority returns the ROLE_-prefixed authority string carried in tokens
// and expected by the route guards.
func (r Rol) Authority() string { return authorities[r] }

// Valida reports whether r is one of the three known roles.
func (r Rol) Valida() bool {
	_, ok := authorities[r]
	return ok
}
