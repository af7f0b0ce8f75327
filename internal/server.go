package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/volleyfit/internal/config"
	"github.com/2beens/volleyfit/internal/middleware"
	"github.com/2beens/volleyfit/internal/stores"
	"github.com/2beens/volleyfit/internal/telemetry/metrics"
	"github.com/2beens/volleyfit/internal/telemetry/tracing"
	"github.com/2beens/volleyfit/internal/training/program"
	"github.com/2beens/volleyfit/internal/training/progress"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
	"github.com/2beens/volleyfit/pkg"
)

const workoutLogsRouteGroup = "workout-logs"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config *config.Config
	stores *stores.Stores

	catalog         *program.Catalog
	workoutService  *workoutlog.Service
	progressService *progress.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (_ *Server, err error) {
	cfg := params.Config
	s := &Server{
		config:       cfg,
		otelShutdown: func() {},
	}
	defer func() {
		if err != nil {
			s.closeStores()
		}
	}()

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s.stores, err = stores.Open(ctx, cfg, stores.OpenParams{
		RedisPassword:    params.RedisPassword,
		PostgresPassword: params.PostgresPassword,
		TracingEnabled:   params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	log.Infof("workout logs store: %s", cfg.LogStore)

	var promCollectors []prometheus.Collector
	if s.stores.DBPool != nil {
		promCollectors = append(promCollectors, pgxpoolprometheus.NewCollector(
			s.stores.DBPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	s.promRegistry = metrics.SetupPrometheus(promCollectors...)
	s.metricsManager = metrics.NewManager("volleyfit", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	s.otelShutdown, err = tracing.HoneycombSetup(params.HoneycombTracingEnabled, "volleyfit-service", s.stores.Redis)
	if err != nil {
		return nil, err
	}

	s.catalog = program.DefaultCatalog()
	logsRepo := workoutlog.NewRepository(s.stores.KV, s.metricsManager)
	s.progressService = progress.NewService(progress.NewServiceParams{
		Repo:           logsRepo,
		Catalog:        s.catalog,
		MetricsManager: s.metricsManager,
		Location:       loc,
		CacheSizeMB:    cfg.ProgressCacheSizeMB,
		CacheTTL:       cfg.ProgressCacheTTL(),
	})
	s.workoutService = workoutlog.NewService(logsRepo, s.catalog, s.progressService)

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("volleyfit-router"))

	programHandler := program.NewHandler(s.catalog)
	programHandler.SetupRoutes(r)

	var rateLimiter middleware.RequestRateLimiter
	if s.stores.Redis != nil {
		rateLimiter = redis_rate.NewLimiter(s.stores.Redis)
	} else {
		log.Debugln("no redis, workout logs rate limiting disabled")
	}
	workoutLogHandler := workoutlog.NewHandler(s.workoutService)
	workoutLogHandler.SetupRoutes(r, middleware.RateLimit(
		rateLimiter,
		s.metricsManager,
		workoutLogsRouteGroup,
		s.config.LogRateLimitAllowedPerMin,
	))

	progressHandler := progress.NewHandler(s.progressService)
	progressHandler.SetupRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks")
	}).Methods("GET").Name("health")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestID())
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      instrumentedHandler(router),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// instrumentedHandler starts a server span for every request, otelmux then
// adds the route to it.
func instrumentedHandler(handler http.Handler, opts ...otelhttp.Option) http.Handler {
	return otelhttp.NewHandler(handler, "volleyfit-http", opts...)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}
	if err != nil {
		log.Errorf(" >>> failed to gracefully shutdown http servers: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	s.closeStores()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) closeStores() {
	if s.stores == nil {
		return
	}
	if err := s.stores.Close(); err != nil {
		log.Errorf("failed to close stores: %s", err)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
