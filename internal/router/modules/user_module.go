package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/savourie/recettes-api/internal/container"
	handlers "github.com/savourie/recettes-api/internal/interface/http"
	"github.com/savourie/recettes-api/internal/interface/middleware"
	"github.com/savourie/recettes-api/pkg/helpers"
)

// UserModule wires registration, login, profile and the user listing.
// Public: POST /utilisateurs/inscription, POST /utilisateurs/connexion, GET /utilisateurs
// Protected: GET /utilisateurs/profil
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/utilisateurs/inscription", registerLimiter, m.Handler.Register)
	rg.POST("/utilisateurs/connexion", loginLimiter, m.Handler.Login)
	rg.GET("/utilisateurs", m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/utilisateurs/profil", m.Handler.Profile)
	}
}
