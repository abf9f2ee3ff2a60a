package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dtroode/archia-server/internal/api/http/handler"
	"github.com/dtroode/archia-server/internal/api/http/middleware"
	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/metrics"
	"github.com/dtroode/archia-server/internal/model"
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	AuthService       handler.AuthService
	SessionResolver   middleware.SessionResolver
	StoryService      handler.StoryService
	EngagementService handler.EngagementService
	ContextManager    model.ContextManager
	Health            *handler.Health
	Metrics           *metrics.Metrics
	Gatherer          prometheus.Gatherer
	ServiceName       string
	Logger            *logger.Logger
}

// Router builds the gin engine serving the public API.
type Router struct {
	deps Dependencies
}

func New(deps Dependencies) *Router {
	return &Router{deps: deps}
}

// Register creates the engine with middleware and every route attached.
func (r *Router) Register() *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(otelgin.Middleware(r.deps.ServiceName))
	e.Use(middleware.NewLogging(r.deps.Logger).Handle())
	if r.deps.Metrics != nil {
		e.Use(middleware.NewMetrics(r.deps.Metrics).Handle())
	}

	r.registerHealthRoutes(e)

	authenticate := middleware.NewAuthenticate(r.deps.SessionResolver, r.deps.ContextManager, r.deps.Logger)
	api := e.Group("/api/v1", authenticate.Handle())

	r.registerAuthRoutes(api, authenticate)
	r.registerStoryRoutes(api)

	return e
}

func (r *Router) registerHealthRoutes(e *gin.Engine) {
	health := r.deps.Health
	if health == nil {
		health = handler.NewHealth(nil)
	}
	e.GET("/health", health.Live)
	e.GET("/ready", health.Ready)

	if r.deps.Gatherer != nil {
		e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.deps.Gatherer, promhttp.HandlerOpts{})))
	}
}

func (r *Router) registerAuthRoutes(api *gin.RouterGroup, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.deps.AuthService, r.deps.Logger)
	sessionHandler := handler.NewSession(r.deps.ContextManager)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authenticate.RequireSession(), authHandler.Logout)
	api.GET("/session", sessionHandler.Get)
}

func (r *Router) registerStoryRoutes(api *gin.RouterGroup) {
	storyHandler := handler.NewStory(r.deps.StoryService, r.deps.EngagementService, r.deps.ContextManager, r.deps.Logger)

	api.GET("/stories", storyHandler.List)
	api.POST("/stories", storyHandler.Create)
	api.GET("/stories/:id", storyHandler.Get)
	api.POST("/stories/:id/like", storyHandler.Like)
	api.GET("/stories/:id/archive", storyHandler.Archive)
	api.GET("/story/*title", storyHandler.GetByTitle)
}
