// Package server assembles the HTTP router from the configured backends.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/startupathon-api/api/swagger"
	"github.com/noah-isme/startupathon-api/internal/bootstrap"
	"github.com/noah-isme/startupathon-api/internal/handler"
	"github.com/noah-isme/startupathon-api/internal/middleware"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/service"
	"github.com/noah-isme/startupathon-api/pkg/config"
	"github.com/noah-isme/startupathon-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/startupathon-api/pkg/middleware/cors"
	"github.com/noah-isme/startupathon-api/pkg/middleware/requestid"
)

// Options carries everything the router needs. Metrics may be nil; Store and Media may not.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   *bootstrap.Store
	Media   *bootstrap.Media
	Metrics *service.MetricsService
}

// Services are the use cases built from Options, exposed for tooling such as create-admin.
type Services struct {
	Auth        *service.AuthService
	Media       *service.MediaService
	Challenges  *service.ChallengeService
	Completers  *service.CompleterService
	Subscribers *service.SubscriberService
	Founders    *service.FounderService
	Public      *service.PublicService
}

// NewServices wires the service layer over the store and media backends.
func NewServices(opts Options) *Services {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	validate := service.NewValidator()

	auth := service.NewAuthService(opts.Store.Users, validate, log.Named("auth"), service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	}, opts.Metrics)

	svcs := &Services{Auth: auth}
	svcs.Media = service.NewMediaService(opts.Media.Store, log.Named("media"), service.MediaConfig{
		MaxFileSize:   cfg.Media.MaxFileSize,
		PublicBaseURL: cfg.Media.PublicBaseURL,
	}, opts.Metrics)
	if opts.Media.Cleanup != nil {
		svcs.Media.UseCleanupQueue(opts.Media.Cleanup)
	}
	svcs.Challenges = service.NewChallengeService(opts.Store.Challenges, svcs.Media, validate, log.Named("challenges"))
	svcs.Completers = service.NewCompleterService(opts.Store.Completers, svcs.Media, validate, log.Named("completers"))
	svcs.Subscribers = service.NewSubscriberService(opts.Store.Subscribers, validate, log.Named("subscribers"))
	svcs.Founders = service.NewFounderService(opts.Store.Founders, validate, log.Named("founders"))
	svcs.Public = service.NewPublicService(svcs.Challenges, svcs.Completers, svcs.Subscribers)
	return svcs
}

// NewRouter builds the gin engine serving the public site, the admin API and the probes.
func NewRouter(opts Options) *gin.Engine {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	svcs := NewServices(opts)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Assign())
	r.Use(logger.GinMiddleware(log))
	r.Use(middleware.Metrics(opts.Metrics, "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	if cfg.Metrics.Enabled && opts.Metrics != nil {
		r.GET("/metrics", handler.Metrics(opts.Metrics))
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if opts.Media.Local != nil {
		r.Static(opts.Media.Local.URLPrefix(), opts.Media.Local.BaseDir())
	}

	maxUpload := cfg.Media.MaxFileSize
	authHandler := handler.NewAuthHandler(svcs.Auth)
	publicHandler := handler.NewPublicHandler(svcs.Public)
	challengeHandler := handler.NewChallengeHandler(svcs.Challenges, maxUpload)
	completerHandler := handler.NewCompleterHandler(svcs.Completers, maxUpload)
	subscriberHandler := handler.NewSubscriberHandler(svcs.Subscribers)
	founderHandler := handler.NewFounderHandler(svcs.Founders)

	api := r.Group(cfg.APIPrefix)

	health := handler.NewHealthHandler(opts.Store.Probe, opts.Store.Driver, log)
	api.GET("/health", health.Health)
	api.GET("/db-status", health.DBStatus)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", middleware.OptionalJWT(svcs.Auth), authHandler.Register)
	auth.GET("/me", middleware.JWT(svcs.Auth), middleware.RequireRoles(models.RoleAdmin), authHandler.Me)

	api.GET("/challenges", publicHandler.ListChallenges)
	api.GET("/challenges/:id", publicHandler.GetChallenge)
	api.GET("/completers", publicHandler.ListCompleters)
	api.GET("/completers/:id", publicHandler.GetCompleter)
	api.POST("/subscribers", publicHandler.Subscribe)

	admin := api.Group("/admin", middleware.JWT(svcs.Auth), middleware.RequireRoles(models.RoleAdmin))

	admin.GET("/challenges", challengeHandler.List)
	admin.POST("/challenges", challengeHandler.Create)
	admin.GET("/challenges/:id", challengeHandler.Get)
	admin.PUT("/challenges/:id", challengeHandler.Update)
	admin.DELETE("/challenges/:id", challengeHandler.Delete)

	admin.GET("/completers", completerHandler.List)
	admin.POST("/completers", completerHandler.Create)
	admin.GET("/completers/:id", completerHandler.Get)
	admin.PUT("/completers/:id", completerHandler.Update)
	admin.DELETE("/completers/:id", completerHandler.Delete)

	admin.GET("/subscribers", subscriberHandler.List)
	admin.POST("/subscribers", subscriberHandler.Create)
	admin.GET("/subscribers/export", subscriberHandler.Export)
	admin.GET("/subscribers/:id", subscriberHandler.Get)
	admin.PUT("/subscribers/:id", subscriberHandler.Update)
	admin.DELETE("/subscribers/:id", subscriberHandler.Delete)

	admin.GET("/founders", founderHandler.List)
	admin.POST("/founders", founderHandler.Create)
	admin.GET("/founders/:id", founderHandler.Get)
	admin.PUT("/founders/:id", founderHandler.Update)
	admin.DELETE("/founders/:id", founderHandler.Delete)

	return r
}
