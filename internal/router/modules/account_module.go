package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carbonsaathi/carbonsaathi-api/internal/container"
	handlers "github.com/carbonsaathi/carbonsaathi-api/internal/interface/http"
	"github.com/carbonsaathi/carbonsaathi-api/internal/interface/middleware"
	"github.com/carbonsaathi/carbonsaathi-api/pkg/helpers"
)

// AccountModule wires the registration/login handlers and the bearer-token
// protected account routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me, GET /api/users/search
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits; bcrypt makes both of these
	// expensive by design, so keep the limits tight.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.GET("/users/search", m.Handler.Search)
	}
}
