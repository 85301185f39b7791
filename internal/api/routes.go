package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"phCV/internal/api/middleware"
	"phCV/internal/auth"
	"phCV/internal/cache"
	"phCV/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	cacheStore cache.Store,
	storageClient *storage.Client,
	logger *slog.Logger,
	clamdAddr string,
	maxUploadBytes int64,
	allowedOrigins []string,
) {
	cvHandler := NewCVHandler(db)
	cacheHandler := NewCacheHandler(cacheStore)
	exportHandler := NewExportHandler(db, asynqClient, cacheStore, storageClient, storageClient)
	authHandler := NewAuthHandler(db, authService, redisClient, logger)
	wsHandler := NewWsHandler(redisClient, authService, logger, allowedOrigins)
	photoHandler := NewPhotoHandler(storageClient, logger, clamdAddr, maxUploadBytes)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		cvGroup := v1.Group("/cv")
		cvGroup.Use(authMiddleware)
		{
			cvGroup.GET("", cvHandler.GetCV)
			cvGroup.PUT("", cvHandler.SaveCV)
			cvGroup.GET("/render", cvHandler.RenderCV)

			cvGroup.POST("/sections", cvHandler.AddSection)
			cvGroup.DELETE("/sections/:id", cvHandler.RemoveSection)
			cvGroup.PATCH("/sections/:id", cvHandler.UpdateSection)
			cvGroup.POST("/sections/:id/move", cvHandler.MoveSection)

			cvGroup.POST("/cache", cacheHandler.PutCV)
			cvGroup.GET("/cache/:id", cacheHandler.GetCV)

			cvGroup.POST("/export", exportHandler.Export)
			cvGroup.POST("/export/async", exportHandler.ExportAsync)
			cvGroup.GET("/export/download-link", exportHandler.GetDownloadLink)
		}

		photoGroup := v1.Group("/photos")
		photoGroup.Use(authMiddleware)
		{
			photoGroup.POST("/upload", photoHandler.UploadPhoto)
			photoGroup.GET("", photoHandler.ListPhotos)
			photoGroup.GET("/view", photoHandler.GetPhotoURL)
			photoGroup.DELETE("", photoHandler.DeletePhotos)
		}
	}
}
