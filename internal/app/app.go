package app

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"businessbites/internal/config"
	"businessbites/internal/infrastructure/enrich"
	"businessbites/internal/infrastructure/httpapi"
	"businessbites/internal/infrastructure/storage"
	"businessbites/internal/ports"
	"businessbites/internal/usecase"
)

// Application wires configuration to storage backends, use cases, and the
// HTTP router.
type Application struct {
	cfg     config.Config
	router  *echo.Echo
	closers []func()
}

// New resolves the configured backend chain and builds a runnable
// application instance. Backend names are validated here, once at startup;
// reachability is a per-request concern handled by the fallback chain.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	app := &Application{cfg: cfg}

	var (
		sources []ports.RowSource
		pingers []httpapi.Pinger

		watchlist ports.WatchlistRepository
		readLater ports.ReadLaterRepository
		feedback  ports.FeedbackRepository
	)

	for _, name := range cfg.Backends {
		switch name {
		case "postgres":
			pg, err := storage.NewPostgres(cfg.Database.DSN, baseLogger.With("component", "storage.postgres"))
			if err != nil {
				return nil, fmt.Errorf("configure postgres backend: %w", err)
			}
			app.closers = append(app.closers, pg.Close)
			sources = append(sources, pg)
			pingers = append(pingers, pg)
			if watchlist == nil {
				watchlist, readLater, feedback = pg, pg, pg
			}

		case "static":
			var (
				static *storage.Static
				err    error
			)
			if cfg.Static.DatasetPath != "" {
				static, err = storage.NewStaticFromFile(cfg.Static.DatasetPath)
			} else {
				static, err = storage.NewStatic()
			}
			if err != nil {
				return nil, fmt.Errorf("configure static backend: %w", err)
			}
			sources = append(sources, static)

		case "sqlite":
			lite, err := storage.NewSQLite(cfg.SQLite.Path, baseLogger.With("component", "storage.sqlite"))
			if err != nil {
				return nil, fmt.Errorf("configure sqlite backend: %w", err)
			}
			app.closers = append(app.closers, func() { _ = lite.Close() })
			sources = append(sources, lite)
			pingers = append(pingers, lite)
			if watchlist == nil {
				watchlist, readLater, feedback = lite, lite, lite
			}

		default:
			return nil, fmt.Errorf("unknown backend %q in configuration", name)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no backends configured")
	}
	if watchlist == nil {
		return nil, fmt.Errorf("backend chain %v has no writable store for watchlist/read-later/feedback", cfg.Backends)
	}

	bites := usecase.NewBiteService(usecase.BiteServiceDeps{
		Sources: sources,
		Images:  enrich.NewOGImageResolver(nil, baseLogger.With("component", "enrich.images")),
		Logger:  baseLogger.With("component", "bites"),
	})

	app.router = httpapi.NewRouter(httpapi.RouterConfig{
		Logger:    baseLogger.With("component", "http"),
		Bites:     bites,
		Watchlist: watchlist,
		ReadLater: readLater,
		Feedback:  feedback,
		Pingers:   pingers,
	})

	return app, nil
}

// Router exposes the configured HTTP handler.
func (a *Application) Router() *echo.Echo {
	return a.router
}

// Close releases storage resources in reverse construction order.
func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
