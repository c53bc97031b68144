package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/config"
	"github.com/MrPunder/spasibki-front/internal/frontserver"
	"github.com/MrPunder/spasibki-front/internal/handlers"
	"github.com/MrPunder/spasibki-front/internal/jobs"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/metrics"
	"github.com/MrPunder/spasibki-front/internal/middleware"
	"github.com/MrPunder/spasibki-front/internal/render"
	"github.com/MrPunder/spasibki-front/internal/view"
)

func main() {
	conf, err := config.LoadConfig("")
	if err != nil {
		panic(err)
	}
	log, err := logger.NewZapLogger(conf)
	if err != nil {
		panic(err)
	}
	log.Info("Initialized logger")
	log.Infof("Config parametrs: server=%+v backend=%s session=%+v ui=%+v",
		conf.Server, conf.Backend.BaseURL, conf.Session, conf.UI)

	m := metrics.New()

	client, err := apiclient.NewClient(conf.Backend.BaseURL, conf.Backend.Token, conf.Backend.Timeout, log,
		apiclient.WithObserver(m))
	if err != nil {
		log.Errorf("Failed to initialize backend client: %v", err)
		panic(err)
	}
	log.Infof("Backend client initialized for %s", conf.Backend.BaseURL)

	store := view.NewStore(func(userID int, initial view.TabID) *view.Session {
		return view.NewSession(userID, initial, client, conf.UI, log)
	}, m.SetSessions)

	renderer, err := render.New()
	if err != nil {
		log.Errorf("Failed to parse templates: %v", err)
		panic(err)
	}

	scheduler := jobs.NewScheduler(store, conf.Session.IdleTTL, log)
	if err := scheduler.Start(conf.Session.EvictSchedule); err != nil {
		log.Errorf("Failed to start scheduler: %v", err)
		panic(err)
	}

	tokenAuth := middleware.NewTokenAuth(middleware.TokenAuthConfig{
		APIToken: conf.Server.MetricsToken,
		Logger:   log,
	})
	router := handlers.NewRouter(handlers.NewHandler(log, store, renderer), handlers.Options{
		Metrics:     m.Handler(),
		MetricsAuth: tokenAuth.Middleware,
		Middlewares: []func(next http.Handler) http.Handler{middleware.NewHTTPMetrics(m).Handler},
	})

	fserver := frontserver.NewFrontServer(conf.Server.RunAddress, router, log)

	hLogger := middleware.NewHTTPLoger(log)
	compressor := middleware.NewGzipCompressor(log)
	fserver.AddMidleware(compressor.CompressHandler, hLogger.HTTPLogHandler)
	log.Info("Initialized middleware functions")

	go func() {
		if err := fserver.RunServer(); err != nil {
			log.Errorf("Server stopped: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Initialized shutdown")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := fserver.Shutdown(ctx); err != nil {
		log.Errorf("Cann't stop server %s", err)
	}

	if err := log.Close(); err != nil {
		panic(err)
	}
}
