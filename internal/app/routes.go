package app

import (
	"net/http"

	"fieldmate/internal/auth"
	"fieldmate/internal/cache"
	"fieldmate/internal/config"
	"fieldmate/internal/events"
	"fieldmate/internal/handlers"
	"fieldmate/internal/metrics"
	"fieldmate/internal/middleware"
	"fieldmate/internal/repo"
	"fieldmate/internal/response"
	"fieldmate/internal/service"
	"fieldmate/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Deps are the shared resources routes are built from.
type Deps struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      repo.DB
	Redis   *redis.Client
	Store   *storage.Store
	Hub     *events.Hub
	Limiter *middleware.RateLimiter
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, d Deps) {
	cfg := d.Config
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL.Duration())
	refresh := auth.NewRefreshStore(d.Redis, cfg.Auth.RefreshTTL.Duration())
	listCache := cache.NewListCache(d.Redis, cfg.Redis.DefaultTTL.Duration())

	memberRepo := repo.NewPGMemberRepo(d.DB)
	clientRepo := repo.NewPGClientRepo(d.DB)
	businessRepo := repo.NewPGBusinessRepo(d.DB)
	categoryRepo := repo.NewPGCategoryRepo(d.DB)
	taskRepo := repo.NewPGTaskRepo(d.DB)

	memberSvc := service.NewMemberService(memberRepo, d.Hub)
	clientSvc := service.NewClientService(clientRepo, listCache, d.Hub, d.Logger)
	businessSvc := service.NewBusinessService(businessRepo, clientRepo, memberRepo, d.Hub)
	categorySvc := service.NewCategoryService(categoryRepo, listCache, d.Hub, d.Logger)
	taskSvc := service.NewTaskService(taskRepo, businessRepo, categoryRepo, d.Store, d.Hub, d.Logger, cfg.Storage.MaxImages)

	// Room for every image plus the text parts of the form.
	maxBody := int64(cfg.Storage.MaxImages)*cfg.Storage.MaxImageBytes + 1<<20

	public := r.Group("", d.Limiter.Handler(middleware.ClientIPKey))
	registerAuthRoutes(public, handlers.NewAuthHandler(memberSvc, tokens, refresh))

	protected := r.Group("", auth.RequireMember(tokens), d.Limiter.Handler(auth.RateLimitKey))
	registerMemberRoutes(protected, handlers.NewMemberHandler(memberSvc))
	registerClientRoutes(protected, handlers.NewClientHandler(clientSvc))
	registerBusinessRoutes(protected, handlers.NewBusinessHandler(businessSvc))
	registerCategoryRoutes(protected, handlers.NewCategoryHandler(categorySvc))
	registerTaskRoutes(protected, handlers.NewTaskHandler(taskSvc, maxBody))
	registerEventRoutes(protected, handlers.NewEventsHandler(d.Hub, d.Logger))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"service": "FieldMate API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"metrics": "/metrics",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			response.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/company", h.RegisterCompany)
	api.POST("/member/login", h.Login)
	api.POST("/member/reissue", h.Reissue)
	api.POST("/member/logout", h.Logout)
}

func registerMemberRoutes(api *gin.RouterGroup, h *handlers.MemberHandler) {
	api.GET("/member/me", h.Me)
	api.GET("/member/:memberId", h.Get)
	api.PATCH("/member/:memberId", h.Update)
	api.DELETE("/member/:memberId", auth.RequireLeader(), h.Delete)
	api.GET("/company/:companyId/members", h.List)
	api.POST("/company/:companyId/member", auth.RequireLeader(), h.Create)
}

func registerClientRoutes(api *gin.RouterGroup, h *handlers.ClientHandler) {
	api.POST("/company/client", h.Create)
	api.GET("/company/:companyId/clients", h.List)
	api.GET("/company/client/:clientId", h.Get)
	api.PATCH("/company/client/:clientId", h.Update)
	api.DELETE("/company/client/:clientId", auth.RequireLeader(), h.Delete)
}

func registerBusinessRoutes(api *gin.RouterGroup, h *handlers.BusinessHandler) {
	api.POST("/company/client/:clientId/business", h.Create)
	api.GET("/company/client/:clientId/businesses", h.List)
	api.GET("/company/client/business/:businessId", h.Get)
	api.PATCH("/company/client/business/:businessId", h.Update)
	api.DELETE("/company/client/business/:businessId", h.Delete)
	api.GET("/company/client/business/:businessId/members", h.Members)
	api.PUT("/company/client/business/:businessId/members", h.SetMembers)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler) {
	api.GET("/company/:companyId/client/business/task/categories", h.List)
	api.POST("/company/:companyId/client/business/task/category", auth.RequireLeader(), h.Create)
	api.PATCH("/company/client/business/task/category/:categoryId", auth.RequireLeader(), h.Update)
	api.DELETE("/company/client/business/task/categories", auth.RequireLeader(), h.DeleteMany)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/company/client/business/task", h.Create)
	api.GET("/company/client/business/task/:taskId", h.Get)
	api.PATCH("/company/client/business/task/:taskId", h.Update)
	api.DELETE("/company/client/business/task/:taskId", h.Delete)
	api.GET("/company/:companyId/client/business/tasks", h.List)
	api.GET("/images/:imageId", h.Image)
}

func registerEventRoutes(api *gin.RouterGroup, h *handlers.EventsHandler) {
	api.GET("/company/:companyId/events", h.Stream)
}
