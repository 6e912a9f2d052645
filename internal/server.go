package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/cache"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/config"
	gymstatsmcp "github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/mcp"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/middleware"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/metrics"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/tracing"
	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

const routerName = "main-router"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config            *config.Config
	warmupService     *warmup.Service
	prescriptionCache *cache.PrescriptionCache
	redisClient       *redis.Client

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	catalog := warmup.DefaultCatalog()
	if cfg.WarmupCatalogPath != "" {
		var err error
		catalog, err = warmup.LoadCatalog(cfg.WarmupCatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load warm-up catalog: %w", err)
		}
		log.Infof("warm-up catalog [%s] loaded from [%s]", catalog.Version(), cfg.WarmupCatalogPath)
	}

	prescriptionCache := cache.NewPrescriptionCache(cfg.CacheSizeBytes, cfg.CacheTTL.Duration)
	cacheEntriesCollector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "backend",
		Subsystem: "main",
		Name:      "warmup_prescription_cache_entries",
		Help:      "Number of cached warm-up prescriptions",
	}, func() float64 {
		return float64(prescriptionCache.EntryCount())
	})

	promRegistry := metrics.NewRegistry("backend", "main", metrics.ServiceInfo{
		Version:        params.VersionInfo,
		CatalogVersion: catalog.Version(),
	}, cacheEntriesCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// redis only backs the rate limiter
	var rdb *redis.Client
	if cfg.RateLimitPerMinute > 0 {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0,
		})
		if pong, err := pingRedis(ctx, rdb); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", pong)
		}
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymstats-warmup", rdb)
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	return &Server{
		config:            cfg,
		versionInfo:       params.VersionInfo,
		prescriptionCache: prescriptionCache,
		warmupService: warmup.NewService(
			warmup.NewGenerator(catalog),
			prescriptionCache,
			metricsManager,
		),
		redisClient:    rdb,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func pingRedis(ctx context.Context, rdb *redis.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Result()
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(routerName))

	warmupHandler := warmup.NewHandler(s.warmupService)
	warmupHandler.SetupRoutes(r)

	mcpServer := gymstatsmcp.NewServer(s.warmupService, s.metricsManager)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(mcpHandler).Methods("GET", "POST", "DELETE", "OPTIONS").Name("mcp")

	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	var rateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.TraceRequests())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.RateLimit(rateLimiter, routerName, s.config.RateLimitPerMinute, s.config.TrustProxyHeaders, s.metricsManager))
	r.Use(middleware.DiscardUnreadBody())

	return r
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	version := s.versionInfo
	if version == "" {
		version = "unknown"
	}
	pkg.WriteTextResponseOK(w, version)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      otelhttp.NewHandler(s.routerSetup(), routerName),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.MetricsHost, s.config.MetricsPort)
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

// GracefulShutdown stops both listeners and releases clients. All failures are
// combined in the returned error.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	var err error

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}
