// Package router assembles the gin engine serving the admin API.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/internal/handler"
	internalmiddleware "github.com/noah-isme/academy-admin-api/internal/middleware"
	"github.com/noah-isme/academy-admin-api/internal/service"
	"github.com/noah-isme/academy-admin-api/pkg/config"
	"github.com/noah-isme/academy-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/academy-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academy-admin-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler mounted by New.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Students  *handler.StudentHandler
	Teachers  *handler.TeacherHandler
	Notices   *handler.NoticeHandler
	Popups    *handler.PopupHandler
	Public    *handler.PublicHandler
	Metrics   *handler.MetricsHandler
}

// Options carries the cross-cutting dependencies of the engine.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *service.MetricsService
	// Guard admits requests to the admin routes.
	Guard gin.HandlerFunc
}

// recordRoutes is the route surface shared by the four admin resources.
type recordRoutes interface {
	List(c *gin.Context)
	Stats(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	OpenCreateForm(c *gin.Context)
	OpenEditForm(c *gin.Context)
	GetForm(c *gin.Context)
	UpdateForm(c *gin.Context)
	ToggleFormOption(c *gin.Context)
	SubmitForm(c *gin.Context)
	CancelForm(c *gin.Context)
}

// New builds the engine with middleware and routes registered.
func New(opts Options, h Handlers) *gin.Engine {
	cfg := opts.Config
	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	if cfg.Metrics.Enabled && opts.Metrics != nil {
		r.Use(internalmiddleware.Metrics(opts.Metrics))
	}
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/", h.Public.Landing)
	r.NoRoute(h.Public.RedirectHome)

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/session", h.Auth.Session)

	public := api.Group("/public")
	public.GET("/popups", h.Public.Popups)
	public.GET("/notices", h.Public.Notices)
	public.GET("/notices/:id", h.Public.Notice)

	admin := api.Group("")
	admin.Use(opts.Guard)
	admin.GET("/dashboard", h.Dashboard.Admin)

	students := registerRecordRoutes(admin, "/students", h.Students, logr)
	students.GET("/export", h.Students.Export)
	students.POST("/import", h.Students.Import)

	teachers := registerRecordRoutes(admin, "/teachers", h.Teachers, logr)
	teachers.GET("/export", h.Teachers.Export)

	registerRecordRoutes(admin, "/notices", h.Notices, logr)

	popups := registerRecordRoutes(admin, "/popups", h.Popups, logr)
	popups.POST("/:id/toggle", h.Popups.Toggle)

	return r
}

func registerRecordRoutes(parent *gin.RouterGroup, path string, routes recordRoutes, logr *zap.Logger) *gin.RouterGroup {
	group := parent.Group(path)
	group.Use(internalmiddleware.Audit(logr, path[1:]))

	group.GET("", routes.List)
	group.POST("", routes.Create)
	group.GET("/stats", routes.Stats)

	group.GET("/form", routes.GetForm)
	group.POST("/form", routes.OpenCreateForm)
	group.PUT("/form", routes.UpdateForm)
	group.DELETE("/form", routes.CancelForm)
	group.POST("/form/toggle", routes.ToggleFormOption)
	group.POST("/form/submit", routes.SubmitForm)

	group.GET("/:id", routes.Get)
	group.PUT("/:id", routes.Update)
	group.DELETE("/:id", routes.Delete)
	group.POST("/:id/form", routes.OpenEditForm)

	return group
}
