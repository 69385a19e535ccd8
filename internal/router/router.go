package router

import (
	"time"

	"github.com/alexpardox/mercaproject/internal/config"
	"github.com/alexpardox/mercaproject/internal/handler"
	"github.com/alexpardox/mercaproject/internal/middleware"
	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/repository"
	"github.com/alexpardox/mercaproject/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	formularioRepo := repository.NewFormularioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, formularioRepo)
	formularioSvc := service.NewFormularioService(formularioRepo, proveedorRepo)
	dashboardSvc := service.NewDashboardService(formularioSvc, proveedorSvc, proveedorRepo, usuarioRepo, cfg.DiasAvisoVencimiento)
	reporteSvc := service.NewReporteService(formularioRepo, proveedorRepo, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	formulariosH := handler.NewFormulariosHandler(formularioSvc, cfg.DiasAvisoVencimiento)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.RolAdministrador, model.RolComercial, model.RolTienda)
	gestion := middleware.RequireRole(model.RolAdministrador, model.RolComercial)
	soloAdmin := middleware.RequireRole(model.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		// Usuarios — administración exclusiva
		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", usuariosH.Registrar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.ObtenerPorID)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.PATCH("/:id/password", usuariosH.CambiarPassword)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
		v1.GET("/usuarios/:id/formularios", gestion, formulariosH.PorUsuario)

		// Proveedores — lectura para todos los roles, escritura para gestión
		v1.GET("/proveedores", todos, proveedoresH.Listar)
		v1.GET("/proveedores/:id", todos, proveedoresH.ObtenerPorID)
		v1.GET("/proveedores/activos", todos, proveedoresH.Activos)
		v1.GET("/proveedores/disponibilidad/rfc", gestion, proveedoresH.DisponibilidadRFC)
		v1.GET("/proveedores/disponibilidad/email", gestion, proveedoresH.DisponibilidadEmail)
		v1.GET("/proveedores/con-formularios-activos", gestion, proveedoresH.ConFormulariosActivos)
		v1.GET("/proveedores/:id/formularios", gestion, formulariosH.PorProveedor)
		prov := v1.Group("/proveedores", gestion)
		{
			prov.POST("", proveedoresH.Registrar)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.PATCH("/:id/activar", proveedoresH.Activar)
			prov.PATCH("/:id/desactivar", proveedoresH.Desactivar)
			prov.PATCH("/:id/suspender", proveedoresH.Suspender)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		// Formularios — los tres roles operan; la tienda queda acotada a lo
		// suyo dentro de handler y servicio
		formularios := v1.Group("/formularios", todos)
		{
			formularios.POST("", formulariosH.Registrar)
			formularios.GET("", formulariosH.Listar)
			formularios.GET("/vigentes", formulariosH.Vigentes)
			formularios.GET("/proximos-a-vencer", formulariosH.ProximosAVencer)
			formularios.GET("/:id", formulariosH.ObtenerPorID)
			formularios.PUT("/:id", formulariosH.Actualizar)
			formularios.PATCH("/:id/cancelar", formulariosH.Cancelar)
			formularios.PATCH("/:id/activar", formulariosH.Activar)
		}
		v1.GET("/formularios/stats", gestion, formulariosH.Stats)
		v1.GET("/formularios/tipo/:tipo", gestion, formulariosH.PorTipoEspacio)
		v1.DELETE("/formularios/:id", soloAdmin, formulariosH.Eliminar)
		v1.POST("/formularios/barrer-vencidos", soloAdmin, formulariosH.BarrerVencidos)

		// Dashboards — uno por rol
		v1.GET("/admin/dashboard", soloAdmin, dashboardH.Admin)
		v1.GET("/comercial/dashboard", gestion, dashboardH.Comercial)
		v1.GET("/tienda/dashboard", middleware.RequireRole(model.RolTienda), dashboardH.Tienda)

		// Reportes
		v1.GET("/reportes/formularios", gestion, reportesH.Formularios)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
