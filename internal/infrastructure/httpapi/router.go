package httpapi

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"businessbites/internal/ports"
	"businessbites/internal/usecase"
)

// RouterConfig holds everything the HTTP surface depends on.
type RouterConfig struct {
	Logger    *slog.Logger
	Bites     *usecase.BiteService
	Watchlist ports.WatchlistRepository
	ReadLater ports.ReadLaterRepository
	Feedback  ports.FeedbackRepository
	Pingers   []Pinger
}

// NewRouter creates and configures the Echo router.
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(config.Logger))

	bitesHandler := NewBitesHandler(config.Bites, config.Logger.With("component", "handler.bites"))
	accountHandler := NewAccountHandler(config.Watchlist, config.ReadLater, config.Feedback,
		config.Logger.With("component", "handler.account"))
	healthHandler := NewHealthHandler(config.Pingers, config.Logger.With("component", "handler.health"))

	api := e.Group("/api")

	news := api.Group("/news")
	news.GET("/business-bites", bitesHandler.GetFeed)
	news.GET("/business-bites/:id", bitesHandler.GetBite)
	news.GET("/search", bitesHandler.Search)

	watchlist := api.Group("/watchlist")
	watchlist.GET("/:userId", accountHandler.ListWatchlist)
	watchlist.POST("/:userId", accountHandler.AddWatchlist)
	watchlist.DELETE("/:userId/:symbol", accountHandler.RemoveWatchlist)

	readLater := api.Group("/read-later")
	readLater.GET("/:userId", accountHandler.ListReadLater)
	readLater.POST("/:userId", accountHandler.AddReadLater)
	readLater.DELETE("/:userId/:newsId", accountHandler.RemoveReadLater)

	api.POST("/feedback", accountHandler.CreateFeedback)
	api.GET("/health", healthHandler.Check)

	return e
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	})
}
