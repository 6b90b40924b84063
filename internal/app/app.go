package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mayhew-amaya/taskflow-api/docs"
	"github.com/mayhew-amaya/taskflow-api/internal/config"
	"github.com/mayhew-amaya/taskflow-api/internal/rest/handlers"
	"github.com/mayhew-amaya/taskflow-api/internal/storage/sqlite"
)

const envLocal = "local"

// App owns the storage and the HTTP server. Done is closed after a graceful
// shutdown completes.
type App struct {
	Done chan struct{}

	log    *logrus.Entry
	cfg    *config.Config
	server *http.Server
}

func New(cfg *config.Config, log *logrus.Entry) (*App, error) {
	const op = "app.New"

	store, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router := NewRouter(cfg.Env, log.Logger, store)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		Done:   make(chan struct{}),
		log:    log,
		cfg:    cfg,
		server: server,
	}, nil
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(env string, log *logrus.Logger, store *sqlite.Storage) *gin.Engine {
	if env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handlers.NewHealthHandler().EnrichRoutes(router)
	handlers.NewTaskHandler(store, log).EnrichRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// Run starts serving and installs the signal handler that drives shutdown.
func (a *App) Run() {
	go func() {
		a.log.Infof("http server listening on %s", a.cfg.HTTPServer.Address)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("http server stopped unexpectedly")
		}
	}()

	go a.awaitShutdown()
}

func (a *App) awaitShutdown() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	a.log.Info("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.Timeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("graceful shutdown failed")
	}

	close(a.Done)
}
