package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/savourie/recettes-api/internal/container"
	handlers "github.com/savourie/recettes-api/internal/interface/http"
	"github.com/savourie/recettes-api/internal/interface/middleware"
	"github.com/savourie/recettes-api/pkg/helpers"
)

// RecipeModule wires the recipe and comment routes.
// Mutating routes require a bearer token; like and comment creation stay
// public on purpose, with optional auth so an identity is attached when
// one is presented.
type RecipeModule struct {
	Handler *handlers.RecipeHandler
	JWT     *helpers.JWTManager
}

func NewRecipeModule(h *handlers.RecipeHandler, jwt *helpers.JWTManager) *RecipeModule {
	return &RecipeModule{Handler: h, JWT: jwt}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	likeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.GET("/recettes", m.Handler.List)
	rg.GET("/recettes/:id", m.Handler.Get)
	rg.POST("/recettes/:id/like", likeLimiter, middleware.OptionalAuth(m.JWT), m.Handler.Like)
	rg.GET("/recettes/:id/commentaires", m.Handler.ListComments)
	rg.POST("/recettes/:id/commentaires", middleware.OptionalAuth(m.JWT), m.Handler.AddComment)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/recettes", m.Handler.Create)
		auth.PUT("/recettes/:id", m.Handler.Update)
		auth.DELETE("/recettes/:id", m.Handler.Delete)
		auth.DELETE("/recettes/:id/commentaires/:commentaireId", m.Handler.RemoveComment)
	}
}
