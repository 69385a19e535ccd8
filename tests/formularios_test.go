package tests

import (
	"context"
	"testing"
	"time"

	"github.com/alexpardox/mercaproject/internal/apperr"
	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFormularioSvc(t *testing.T) (service.FormularioService, *stubFormularioRepo, *model.Proveedor) {
	t.Helper()
	formularios := newStubFormularioRepo()
	proveedores := newStubProveedorRepo()
	p := seedProveedor(t, proveedores, "Lacteos del Norte", "LNO950312AB1", model.ProveedorActivo)
	return service.NewFormularioService(formularios, proveedores), formularios, p
}

func adminActor() model.Actor {
	return model.Actor{ID: uuid.New(), Rol: model.RolAdministrador}
}

func comercialActor() model.Actor {
	return model.Actor{ID: uuid.New(), Rol: model.RolComercial}
}

func tiendaActor(tienda string) model.Actor {
	return model.Actor{ID: uuid.New(), Rol: model.RolTienda, TiendaAsignada: &tienda}
}

// diaLocal is local midnight today plus an offset in days, matching the
// date-only semantics of the form window columns.
func diaLocal(offsetDias int) time.Time {
	ahora := time.Now()
	return time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location()).
		AddDate(0, 0, offsetDias)
}

func fechaStr(offsetDias int) string {
	return diaLocal(offsetDias).Format("2006-01-02")
}

func seedFormulario(t *testing.T, repo *stubFormularioRepo, usuarioID, proveedorID uuid.UUID, tienda string, estado model.EstadoFormulario, inicio, fin time.Time) *model.Formulario {
	t.Helper()
	f := &model.Formulario{
		ID:            uuid.New(),
		NombreTienda:  "Tienda " + tienda,
		CodigoTienda:  tienda,
		ProveedorID:   proveedorID,
		UsuarioID:     usuarioID,
		AreaAsignada:  "Pasillo 4",
		TipoEspacio:   model.EspacioGondola,
		FechaInicio:   inicio,
		FechaFin:      fin,
		Estado:        estado,
		FechaCreacion: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), f))
	return f
}

func registroFormulario(proveedorID uuid.UUID) dto.RegistrarFormularioRequest {
	return dto.RegistrarFormularioRequest{
		NombreTienda: "Tienda Centro",
		CodigoTienda: "TDA001",
		ProveedorID:  proveedorID.String(),
		AreaAsignada: "Pasillo 4",
		TipoEspacio:  string(model.EspacioGondola),
		FechaInicio:  fechaStr(0),
		FechaFin:     fechaStr(30),
	}
}

// ── Registro ─────────────────────────────────────────────────────────────────

func TestRegistrarFormulario_FuerzaActivo(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)

	req := registroFormulario(p.ID)
	// The client may send any estado; registration ignores it.
	req.Estado = string(model.FormularioCancelado)

	resp, err := svc.Registrar(context.Background(), tiendaActor("TDA001"), req)
	require.NoError(t, err)
	assert.Equal(t, string(model.FormularioActivo), resp.Estado)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.FormularioActivo, stored.Estado)
}

func TestRegistrarFormulario_AsignaUsuarioDelActor(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := tiendaActor("TDA001")

	resp, err := svc.Registrar(context.Background(), actor, registroFormulario(p.ID))
	require.NoError(t, err)

	id, _ := uuid.Parse(resp.ID)
	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, stored.UsuarioID)
}

func TestRegistrarFormulario_FinAntesDeInicio(t *testing.T) {
	svc, _, p := buildFormularioSvc(t)

	req := registroFormulario(p.ID)
	req.FechaInicio = fechaStr(10)
	req.FechaFin = fechaStr(5)

	_, err := svc.Registrar(context.Background(), tiendaActor("TDA001"), req)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.EqualError(t, err, "la fecha de fin no puede ser anterior a la fecha de inicio")
}

func TestRegistrarFormulario_InicioEnElPasado(t *testing.T) {
	svc, _, p := buildFormularioSvc(t)

	req := registroFormulario(p.ID)
	req.FechaInicio = fechaStr(-1)

	_, err := svc.Registrar(context.Background(), tiendaActor("TDA001"), req)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.EqualError(t, err, "la fecha de inicio no puede ser anterior a hoy")
}

func TestRegistrarFormulario_InicioHoyPermitido(t *testing.T) {
	svc, _, p := buildFormularioSvc(t)

	req := registroFormulario(p.ID)
	req.FechaInicio = fechaStr(0)
	req.FechaFin = fechaStr(0)

	_, err := svc.Registrar(context.Background(), tiendaActor("TDA001"), req)
	require.NoError(t, err)
}

func TestRegistrarFormulario_ProveedorInexistente(t *testing.T) {
	svc, _, _ := buildFormularioSvc(t)

	req := registroFormulario(uuid.New())
	_, err := svc.Registrar(context.Background(), tiendaActor("TDA001"), req)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// ── Actualización ────────────────────────────────────────────────────────────

func actualizacionDe(f *model.Formulario) dto.ActualizarFormularioRequest {
	return dto.ActualizarFormularioRequest{
		NombreTienda: f.NombreTienda,
		CodigoTienda: f.CodigoTienda,
		ProveedorID:  f.ProveedorID.String(),
		AreaAsignada: f.AreaAsignada,
		TipoEspacio:  string(f.TipoEspacio),
		FechaInicio:  f.FechaInicio.Format("2006-01-02"),
		FechaFin:     f.FechaFin.Format("2006-01-02"),
		Estado:       string(f.Estado),
	}
}

func TestActualizarFormulario_EstadoVerbatim(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	f := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))

	// Update honors whatever estado the client sends, registration's
	// forcing does not apply here.
	req := actualizacionDe(f)
	req.Estado = string(model.FormularioPendiente)

	resp, err := svc.Actualizar(context.Background(), actor, f.ID, req)
	require.NoError(t, err)
	assert.Equal(t, string(model.FormularioPendiente), resp.Estado)
}

func TestActualizarFormulario_InicioEnElPasadoPermitido(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	f := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))

	// The start-in-past rule only guards registration.
	req := actualizacionDe(f)
	req.FechaInicio = fechaStr(-10)

	_, err := svc.Actualizar(context.Background(), actor, f.ID, req)
	require.NoError(t, err)
}

func TestActualizarFormulario_RevisaVencimiento(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	f := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-30), diaLocal(30))

	// Moving the window entirely into the past expires the form on save,
	// even though the client asked for ACTIVO.
	req := actualizacionDe(f)
	req.FechaInicio = fechaStr(-30)
	req.FechaFin = fechaStr(-1)
	req.Estado = string(model.FormularioActivo)

	resp, err := svc.Actualizar(context.Background(), actor, f.ID, req)
	require.NoError(t, err)
	assert.Equal(t, string(model.FormularioVencido), resp.Estado)
	assert.NotNil(t, resp.FechaActualizacion)
}

func TestActualizarFormulario_NoEncontrado(t *testing.T) {
	svc, _, p := buildFormularioSvc(t)

	req := dto.ActualizarFormularioRequest{
		NombreTienda: "Tienda",
		CodigoTienda: "TDA001",
		ProveedorID:  p.ID.String(),
		AreaAsignada: "Pasillo",
		TipoEspacio:  string(model.EspacioIsla),
		FechaInicio:  fechaStr(0),
		FechaFin:     fechaStr(1),
		Estado:       string(model.FormularioActivo),
	}
	_, err := svc.Actualizar(context.Background(), comercialActor(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// ── Cambios de estado ────────────────────────────────────────────────────────

func TestCancelarYActivar_FlipsLibres(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	f := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	ctx := context.Background()

	resp, err := svc.Cancelar(ctx, actor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.FormularioCancelado), resp.Estado)

	// A cancelled form can come straight back.
	resp, err = svc.Activar(ctx, actor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.FormularioActivo), resp.Estado)
}

func TestActivarFormularioVencido_ReVence(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	f := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioVencido, diaLocal(-30), diaLocal(-1))

	// Reactivating a form whose window already closed is a no-op in
	// practice: the save re-check expires it again.
	resp, err := svc.Activar(context.Background(), actor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.FormularioVencido), resp.Estado)
}

func TestCancelarFormularioConVentanaPasada_SaleVencido(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	f := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-30), diaLocal(-1))

	resp, err := svc.Cancelar(context.Background(), actor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.FormularioVencido), resp.Estado)
}

// ── Eliminación ──────────────────────────────────────────────────────────────

func TestEliminarFormulario_SoloAdmin(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	admin := adminActor()
	f := seedFormulario(t, repo, admin.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	ctx := context.Background()

	err := svc.Eliminar(ctx, comercialActor(), f.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsPermission(err))

	err = svc.Eliminar(ctx, tiendaActor("TDA001"), f.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsPermission(err))

	require.NoError(t, svc.Eliminar(ctx, admin, f.ID))
	_, err = repo.FindByID(ctx, f.ID)
	assert.Error(t, err)
}

func TestEliminarFormulario_NoEncontrado(t *testing.T) {
	svc, _, _ := buildFormularioSvc(t)

	err := svc.Eliminar(context.Background(), adminActor(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// ── Barrido de vencidos ──────────────────────────────────────────────────────

func TestBarrerVencidos(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	ctx := context.Background()

	vencido1 := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-30), diaLocal(-1))
	vencido2 := seedFormulario(t, repo, actor.ID, p.ID, "TDA002", model.FormularioActivo, diaLocal(-60), diaLocal(-10))
	vigente := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	// A cancelled form past its window stays cancelled: the sweep only
	// looks at ACTIVO forms.
	cancelado := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioCancelado, diaLocal(-30), diaLocal(-1))

	n, err := svc.BarrerVencidos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, model.FormularioVencido, repo.formularios[vencido1.ID].Estado)
	assert.Equal(t, model.FormularioVencido, repo.formularios[vencido2.ID].Estado)
	assert.Equal(t, model.FormularioActivo, repo.formularios[vigente.ID].Estado)
	assert.Equal(t, model.FormularioCancelado, repo.formularios[cancelado.ID].Estado)
}

func TestBarrerVencidos_Idempotente(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-30), diaLocal(-1))
	ctx := context.Background()

	n, err := svc.BarrerVencidos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.BarrerVencidos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFormularioQueVenceHoy_SigueActivo(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := comercialActor()
	f := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-5), diaLocal(0))

	// The end date itself still counts as in-window.
	n, err := svc.BarrerVencidos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, model.FormularioActivo, repo.formularios[f.ID].Estado)
}

func TestRevisarVencimiento_FinEnUTCNoVenceElMismoDia(t *testing.T) {
	// The date column round-trips through the driver as UTC midnight; a
	// local "today" west of UTC must still treat the same calendar day as
	// in-window.
	zona := time.FixedZone("UTC-6", -6*3600)
	hoyLocal := time.Date(2026, 8, 31, 0, 0, 0, 0, zona)

	f := &model.Formulario{
		Estado:   model.FormularioActivo,
		FechaFin: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.False(t, f.RevisarVencimiento(hoyLocal))
	assert.Equal(t, model.FormularioActivo, f.Estado)

	f.FechaFin = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	assert.True(t, f.RevisarVencimiento(hoyLocal))
	assert.Equal(t, model.FormularioVencido, f.Estado)
}

// ── Búsqueda con filtros ─────────────────────────────────────────────────────

func TestBuscarConFiltros_ComposicionAND(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := adminActor()
	ctx := context.Background()

	objetivo := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioCancelado, diaLocal(0), diaLocal(30))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA002", model.FormularioActivo, diaLocal(0), diaLocal(30))

	resp, err := svc.BuscarConFiltros(ctx, actor, dto.FormularioFiltro{
		Tienda: "TDA001",
		Estado: string(model.FormularioActivo),
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, objetivo.ID.String(), resp.Formularios[0].ID)
}

func TestBuscarConFiltros_SinFiltrosDevuelveTodo(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := adminActor()
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA002", model.FormularioCancelado, diaLocal(0), diaLocal(30))

	resp, err := svc.BuscarConFiltros(context.Background(), actor, dto.FormularioFiltro{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestBuscarConFiltros_FechasInclusivas(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := adminActor()
	ctx := context.Background()

	dentro := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	// Created exactly at midnight of the filter day: still inside.
	dentro.FechaCreacion = diaLocal(-3)
	fuera := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	fuera.FechaCreacion = diaLocal(-10)

	resp, err := svc.BuscarConFiltros(ctx, actor, dto.FormularioFiltro{
		FechaInicio: fechaStr(-3),
		FechaFin:    fechaStr(-3),
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, dentro.ID.String(), resp.Formularios[0].ID)
}

func TestBuscarConFiltros_OrdenMasRecientePrimero(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := adminActor()

	viejo := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	viejo.FechaCreacion = time.Now().Add(-48 * time.Hour)
	nuevo := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))

	resp, err := svc.BuscarConFiltros(context.Background(), actor, dto.FormularioFiltro{})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, nuevo.ID.String(), resp.Formularios[0].ID)
	assert.Equal(t, viejo.ID.String(), resp.Formularios[1].ID)
}

// ── Permisos de edición ──────────────────────────────────────────────────────

func TestPuedeEditar_Matriz(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	ctx := context.Background()

	duenio := tiendaActor("TDA001")
	f := seedFormulario(t, repo, duenio.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))

	assert.True(t, svc.PuedeEditar(ctx, adminActor(), f.ID))
	assert.True(t, svc.PuedeEditar(ctx, comercialActor(), f.ID))
	assert.True(t, svc.PuedeEditar(ctx, duenio, f.ID))

	// Ownership is by creating user, not by store code: another tienda
	// user assigned to the same store cannot edit it.
	otroMismaTienda := tiendaActor("TDA001")
	assert.False(t, svc.PuedeEditar(ctx, otroMismaTienda, f.ID))
}

func TestPuedeEditar_FormularioInexistente(t *testing.T) {
	svc, _, _ := buildFormularioSvc(t)
	ctx := context.Background()

	assert.False(t, svc.PuedeEditar(ctx, tiendaActor("TDA001"), uuid.New()))
	// Admin and comercial never hit the store for this check.
	assert.True(t, svc.PuedeEditar(ctx, adminActor(), uuid.New()))
}

func TestPuedeEliminar(t *testing.T) {
	svc, _, _ := buildFormularioSvc(t)

	assert.True(t, svc.PuedeEliminar(adminActor()))
	assert.False(t, svc.PuedeEliminar(comercialActor()))
	assert.False(t, svc.PuedeEliminar(tiendaActor("TDA001")))
}

// ── Consultas ────────────────────────────────────────────────────────────────

func TestProximosAVencer_LimiteInclusivo(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := adminActor()

	enLimite := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-5), diaLocal(7))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-5), diaLocal(8))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioCancelado, diaLocal(-5), diaLocal(3))

	resp, err := svc.ProximosAVencer(context.Background(), actor, 7)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, enLimite.ID.String(), resp[0].ID)
}

func TestVigentesEnFecha(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := adminActor()

	vigente := seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(-5), diaLocal(5))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(1), diaLocal(5))

	resp, err := svc.VigentesEnFecha(context.Background(), actor, diaLocal(0))
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, vigente.ID.String(), resp[0].ID)
}

func TestConteoEstados(t *testing.T) {
	svc, repo, p := buildFormularioSvc(t)
	actor := adminActor()
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA001", model.FormularioActivo, diaLocal(0), diaLocal(30))
	seedFormulario(t, repo, actor.ID, p.ID, "TDA002", model.FormularioCancelado, diaLocal(0), diaLocal(30))

	conteo, err := svc.ConteoEstados(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), conteo.Activos)
	assert.Equal(t, int64(1), conteo.Cancelados)
	assert.Equal(t, int64(0), conteo.Vencidos)
	assert.Equal(t, int64(0), conteo.Pendientes)

	porTienda, err := svc.ConteoEstadosPorTienda(context.Background(), "TDA001")
	require.NoError(t, err)
	assert.Equal(t, int64(2), porTienda.Activos)
	assert.Equal(t, int64(0), porTienda.Cancelados)
}
