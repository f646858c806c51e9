package app

import (
	"net/http"

	"go-tenure/internal/record"
	"go-tenure/internal/shared/buildinfo"
	"go-tenure/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type moduleDeps struct {
	repo      record.Repository
	publisher record.EventPublisher
	rdb       *redis.Client
}

func registerModules(router *gin.Engine, deps moduleDeps) {
	logger := zap.L()

	// --- Services ---
	recordService := record.NewServiceWithPublisher(deps.repo, deps.publisher)

	// --- Handlers ---
	recordHandler := record.NewHandler(recordService)

	// --- Routes Registration ---
	router.GET("/health", health)

	api := router.Group("/api/v1")
	{
		record.RegisterRoutes(api, recordHandler, deps.rdb, logger)
	}
}

func health(c *gin.Context) {
	info := buildinfo.Get()
	response.Success(c, http.StatusOK, gin.H{
		"status":    "ok",
		"version":   info.GitVersion,
		"commit":    info.GitCommit,
		"buildDate": info.BuildDate,
	})
}
