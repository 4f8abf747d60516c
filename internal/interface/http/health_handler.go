package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-api/pkg/helpers"
	"github.com/oksasatya/recipe-api/pkg/response"
)

// Pinger is anything health can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Store   Pinger
	Redis   *redis.Client
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewHealthHandler(store Pinger, rdb *redis.Client, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Store: store, Redis: rdb, Logger: logger, Timeout: 2 * time.Second}
}

// Check GET /health. Only the user store decides the status code; Redis
// is reported but optional.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	status := gin.H{"store": "up", "redis": "disabled"}
	code := http.StatusOK
	if err := h.Store.Ping(ctx); err != nil {
		helpers.LogError(h.Logger, "health: store ping failed", err, nil)
		status["store"] = "down"
		code = http.StatusServiceUnavailable
	}
	if h.Redis != nil {
		status["redis"] = "up"
		if err := helpers.PingRedis(ctx, h.Redis); err != nil {
			status["redis"] = "down"
		}
	}

	if code != http.StatusOK {
		response.Error[any](c, code, "Service unavailable", status)
		return
	}
	response.Success[any](c, code, status, "OK", nil)
}
