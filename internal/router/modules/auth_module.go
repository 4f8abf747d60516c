package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/recipe-api/internal/interface/http"
	"github.com/oksasatya/recipe-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-api/pkg/helpers"
)

// AuthModule wires account routes under /api/auth.
// Public: POST register, POST login, POST logout, GET profile/:id
// Protected: GET me
type AuthModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewAuthModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// 10 req/min per IP on each credential endpoint
	credLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil, m.Logger)

	auth := rg.Group("/auth")
	auth.POST("/register", credLimiter, m.Handler.Register)
	auth.POST("/login", credLimiter, m.Handler.Login)
	auth.POST("/logout", m.Handler.Logout)
	auth.GET("/profile/:id", m.Handler.GetProfile)

	me := auth.Group("")
	me.Use(
		middleware.JWTAuth(m.JWT),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil, m.Logger),
	)
	me.GET("/me", m.Handler.Me)
}
