package dto

// ─── Dashboards ──────────────────────────────────────────────────────────────

type AdminDashboardResponse struct {
	Formularios          ConteoEstadosResponse `json:"formularios"`
	ProveedoresActivos   int64                 `json:"proveedores_activos"`
	ProveedoresInactivos int64                 `json:"proveedores_inactivos"`
	ProveedoresSuspendidos int64               `json:"proveedores_suspendidos"`
	UsuariosActivos      int                   `json:"usuarios_activos"`
	UsuariosPorRol       map[string]int64      `json:"usuarios_por_rol"`
}

type ComercialDashboardResponse struct {
	Formularios        ConteoEstadosResponse `json:"formularios"`
	ProximosAVencer    []FormularioResponse  `json:"proximos_a_vencer"`
	ProveedoresConFormulariosActivos []ProveedorResponse `json:"proveedores_con_formularios_activos"`
}

type TiendaDashboardResponse struct {
	Tienda            string                `json:"tienda"`
	Formularios       ConteoEstadosResponse `json:"formularios"`
	FormulariosActivos []FormularioResponse `json:"formularios_activos"`
	ProximosAVencer   []FormularioResponse  `json:"proximos_a_vencer"`
}

// ─── Reports ─────────────────────────────────────────────────────────────────

type ReporteFiltro struct {
	ProveedorID string `form:"proveedor" validate:"omitempty,uuid"`
	Tienda      string `form:"tienda"`
	Desde       string `form:"desde"   validate:"required,datetime=2006-01-02"`
	Hasta       string `form:"hasta"   validate:"required,datetime=2006-01-02"`
	Formato     string `form:"formato" validate:"omitempty,oneof=json pdf"`
}

type ReporteFormulariosResponse struct {
	Titulo      string               `json:"titulo"`
	Desde       string               `json:"desde"`
	Hasta       string               `json:"hasta"`
	Total       int                  `json:"total"`
	Formularios []FormularioResponse `json:"formularios"`
}
