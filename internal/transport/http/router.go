package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/league-manager/internal/transport/http/handler"
	"github.com/ErlanBelekov/league-manager/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth  *handler.AuthHandler
	Users *handler.UserHandler
	Teams *handler.TeamHandler
	Games *handler.GameHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, verifier middleware.TokenVerifier, users middleware.UserLookup, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	if len(allowedOrigins) > 0 {
		r.Use(middleware.CORS(allowedOrigins))
	}
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(verifier)
	ensureUser := middleware.EnsureUser(users, logger)

	// Public
	r.POST("/users/register", h.Auth.Register)
	r.POST("/users/login", h.Auth.Login)

	userRoutes := r.Group("/users", authMW, ensureUser)
	userRoutes.GET("", h.Users.List)
	userRoutes.POST("", h.Users.Create)
	userRoutes.GET("/:id", h.Users.GetByID)
	userRoutes.PUT("/:id", h.Users.Update)
	userRoutes.DELETE("/:id", h.Users.Delete)

	teamRoutes := r.Group("/teams", authMW, ensureUser)
	teamRoutes.GET("", h.Teams.List)
	teamRoutes.POST("", h.Teams.Create)
	teamRoutes.GET("/user/:id", h.Teams.ListByUser)
	teamRoutes.GET("/:id", h.Teams.GetByID)
	teamRoutes.PUT("/:id", h.Teams.Update)
	teamRoutes.DELETE("/:id", h.Teams.Delete)

	gameRoutes := r.Group("/games", authMW, ensureUser)
	gameRoutes.GET("", h.Games.List)
	gameRoutes.POST("", h.Games.Create)
	gameRoutes.GET("/team/:id", h.Games.ListByTeam)
	gameRoutes.GET("/user/:id", h.Games.ListByUser)
	gameRoutes.GET("/:id", h.Games.GetByID)
	gameRoutes.PUT("/:id", h.Games.Update)
	gameRoutes.DELETE("/:id", h.Games.Delete)

	return r
}
