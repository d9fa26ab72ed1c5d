package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomlog/internal/config"
	"github.com/vovakirdan/roomlog/internal/core"
	"github.com/vovakirdan/roomlog/internal/service/messages"
	"github.com/vovakirdan/roomlog/internal/service/rooms"
)

// NewServer builds an HTTP server serving the rooms and messages API.
func NewServer(roomSvc *rooms.Service, messageSvc *messages.Service, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(roomSvc, messageSvc, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(roomSvc *rooms.Service, messageSvc *messages.Service, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		RequestIDMiddleware(),
		LoggerMiddleware(logger),
		RecoveryMiddleware(logger),
		TimeoutMiddleware(cfg.RequestTimeout),
	)

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, stdhttp.StatusNotFound, core.ErrCodeNotFound, "route not found")
	})
	router.NoMethod(func(c *gin.Context) {
		abortWithError(c, stdhttp.StatusMethodNotAllowed, errCodeMethodNotAllowed, "method not allowed")
	})

	router.GET("/health", healthHandler)

	roomHandlers := NewRoomHandlers(roomSvc, logger)
	messageHandlers := NewMessageHandlers(messageSvc, logger)

	router.GET("/", roomHandlers.ListRooms)

	roomRoutes := router.Group("/rooms")
	{
		roomRoutes.GET("", roomHandlers.ListRooms)
		roomRoutes.POST("", roomHandlers.CreateRoom)
		roomRoutes.GET("/:room_id", roomHandlers.ShowRoom)
		roomRoutes.PATCH("/:room_id", roomHandlers.UpdateRoom)
		roomRoutes.PUT("/:room_id", roomHandlers.UpdateRoom)
		roomRoutes.DELETE("/:room_id", roomHandlers.DeleteRoom)
	}

	messageRoutes := roomRoutes.Group("/:room_id/messages")
	{
		messageRoutes.GET("", messageHandlers.ListMessages)
		messageRoutes.POST("", messageHandlers.CreateMessage)
		messageRoutes.GET("/:id", messageHandlers.ShowMessage)
		messageRoutes.PATCH("/:id", messageHandlers.UpdateMessage)
		messageRoutes.PUT("/:id", messageHandlers.UpdateMessage)
		messageRoutes.DELETE("/:id", messageHandlers.DeleteMessage)
	}

	for _, r := range router.Routes() {
		logger.Debug().Str("method", r.Method).Str("path", r.Path).Msg("route registered")
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
