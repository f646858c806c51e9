package record

import (
	"go-tenure/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	records := r.Group("/records")
	records.Use(middleware.ContextLogger(logger))
	{
		records.GET("",
			middleware.RateLimitByIP(10, 30),
			handler.GetAll,
		)

		records.GET("/:id",
			middleware.RateLimitByIP(10, 30),
			handler.GetById,
		)

		records.POST("",
			middleware.RateLimitByIP(2, 10),
			middleware.Idempotency(rdb),
			handler.Create,
		)
	}
}
