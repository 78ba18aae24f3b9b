package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/infrastructure/configs"
	"github.com/driftroom/driftroom/internal/infrastructure/logging"
	"github.com/driftroom/driftroom/internal/infrastructure/metrics"
	auditHandler "github.com/driftroom/driftroom/internal/presentation/handler/audit"
	healthHandler "github.com/driftroom/driftroom/internal/presentation/handler/health"
	roomHandler "github.com/driftroom/driftroom/internal/presentation/handler/rooms"
	uploadsHandler "github.com/driftroom/driftroom/internal/presentation/handler/uploads"
)

type Application struct {
	config         configs.Config
	roomHandler    *roomHandler.Handler
	healthHandler  *healthHandler.Handler
	uploadsHandler *uploadsHandler.Handler
	auditHandler   *auditHandler.Handler // nil without an audit store
	roomService    roomHandler.RoomService
	logger         *zap.SugaredLogger
	requestLogger  logging.Logger
	mediaDir       string // non-empty when the local blob store serves /media
}

func NewApplication(
	config configs.Config,
	roomHandler *roomHandler.Handler,
	healthHandler *healthHandler.Handler,
	uploadsHandler *uploadsHandler.Handler,
	auditHandler *auditHandler.Handler,
	roomService roomHandler.RoomService,
	logger *zap.SugaredLogger,
	requestLogger logging.Logger,
	mediaDir string,
) *Application {
	return &Application{
		config:         config,
		roomHandler:    roomHandler,
		healthHandler:  healthHandler,
		uploadsHandler: uploadsHandler,
		auditHandler:   auditHandler,
		roomService:    roomService,
		logger:         logger,
		requestLogger:  requestLogger,
		mediaDir:       mediaDir,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)

	r.Route("/api", func(r chi.Router) {
		// API routes get the shared timeout; the websocket route below
		// must not, its connections are long-lived.
		r.Use(middleware.Timeout(60 * time.Second))

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", app.roomHandler.CreateRoomHandler)
			r.Get("/{roomId}", app.roomHandler.GetRoomHandler)
			r.Get("/{roomId}/exists", app.roomHandler.ExistsHandler)

			if app.auditHandler != nil {
				r.Get("/{roomId}/audit", app.auditHandler.GetRoomAuditHandler)
			}
		})

		if app.auditHandler != nil {
			r.Get("/audit", app.auditHandler.GetByEventTypeHandler)
		}

		r.Post("/uploads", app.uploadsHandler.UploadHandler)

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	r.Get("/ws", app.roomHandler.AttachHandler)

	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if app.mediaDir != "" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(app.mediaDir)))
		r.Get("/media/*", fs.ServeHTTP)
	}

	r.Get("/", app.serveIndex)
	r.Get("/{roomId}", app.serveRoomPage)

	return otelhttp.NewHandler(r, "driftroom")
}

func (app *Application) serveIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(app.config.HTTP.StaticDir, "index.html"))
}

// serveRoomPage gates direct room URLs: a live room renders the app, a
// dead or unknown one bounces back home.
func (app *Application) serveRoomPage(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" || !app.roomService.Exists(roomID) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.ServeFile(w, r, filepath.Join(app.config.HTTP.StaticDir, "index.html"))
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", srv.Addr)

	return nil
}
