package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/pocket-wallet/docs"
	"github.com/sbilibin2017/pocket-wallet/internal/facades"
	"github.com/sbilibin2017/pocket-wallet/internal/handlers"
	"github.com/sbilibin2017/pocket-wallet/internal/jwt"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/middlewares"
	"github.com/sbilibin2017/pocket-wallet/internal/repositories"
	"github.com/sbilibin2017/pocket-wallet/internal/services"
	"github.com/sbilibin2017/pocket-wallet/internal/transactor"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const serviceName = "pocket-wallet"

// config holds everything parsed from the environment.
type config struct {
	AppHost  string
	AppPort  string
	GRPCPort string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisPrefix       string

	KafkaBrokers            []string
	KafkaEventsTopic        string
	KafkaNotificationsTopic string

	JWTSecretKey string
	Code         services.CodeConfig
}

// @title pocket-wallet API
// @version 1.0.0
// @description Service for managing pockets and confirmed money transactions
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, JWT and confirmation code configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.GRPCPort = getEnv("GRPC_PORT", "50051")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	cfg.RedisPrefix = getEnv("REDIS_PREFIX", serviceName)

	// Kafka config
	cfg.KafkaBrokers = splitBrokers(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaEventsTopic = getEnv("KAFKA_EVENTS_TOPIC", "transaction-events")
	cfg.KafkaNotificationsTopic = getEnv("KAFKA_NOTIFICATIONS_TOPIC", "email-notifications")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")

	// Confirmation codes
	cfg.Code.Secret = getEnv("SECRET_KEY", "my_super_secret_salt")
	if cfg.Code.Length, err = getInt("CONFIRMATION_CODE_LENGTH", strconv.Itoa(services.DefaultCodeLength)); err != nil {
		return
	}
	ttl, err := getInt("CONFIRMATION_CODE_TTL_SECOND", "300")
	if err != nil {
		return
	}
	cfg.Code.TTL = time.Duration(ttl) * time.Second

	return
}

// splitBrokers parses a comma separated broker list, dropping empty items.
func splitBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// kafkaBatchTimeout bounds how long a synchronous write waits for its batch
// to fill. Writes happen one message per request, so the writer default of
// one second would be added to every code request.
const kafkaBatchTimeout = 10 * time.Millisecond

// newKafkaWriter returns nil when no brokers are configured, so the facades
// fall back to their not-configured behaviour.
func newKafkaWriter(brokers []string, topic string) facades.KafkaWriter {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           kafkaBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// run initializes the logger, database, Redis, Kafka, the gRPC health server
// and the HTTP server. It sets up routes, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, serviceName); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writers
	notificationWriter := newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaNotificationsTopic)
	eventWriter := newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	if notificationWriter == nil {
		logger.Log.Warn("KAFKA_BROKERS is empty, notifications and events are disabled")
	} else {
		defer notificationWriter.Close()
		defer eventWriter.Close()
	}

	// Initialize JWT
	tokener := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey))

	// Initialize repositories
	tx := transactor.New(db)
	pocketReadRepo := repositories.NewPocketReadRepository(db, transactor.GetTxFromContext)
	pocketWriteRepo := repositories.NewPocketWriteRepository(db, transactor.GetTxFromContext)
	transactionReadRepo := repositories.NewTransactionReadRepository(db, transactor.GetTxFromContext)
	transactionWriteRepo := repositories.NewTransactionWriteRepository(db, transactor.GetTxFromContext)
	userReadRepo := repositories.NewUserReadRepository(db)
	codeCacheRepo := repositories.NewConfirmationCodeCacheRepository(rdb, cfg.RedisPrefix)

	// Initialize facades
	notifier := facades.NewNotificationKafkaFacade(notificationWriter)
	events := facades.NewTransactionEventKafkaFacade(eventWriter)

	// Initialize services
	codes := services.NewConfirmationCodeStore(codeCacheRepo, cfg.Code)
	pocketService := services.NewPocketService(tx, pocketReadRepo, pocketWriteRepo, codes, userReadRepo, notifier)
	transactionService := services.NewTransactionService(
		tx,
		pocketReadRepo, pocketWriteRepo,
		transactionReadRepo, transactionWriteRepo,
		codes, userReadRepo, notifier, events,
	)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokener))

		handlers.RegisterPocketHandlers(r, handlers.PocketHandlers{
			Create:          handlers.NewCreatePocketHandler(pocketService),
			List:            handlers.NewListPocketsHandler(pocketService),
			Get:             handlers.NewGetPocketHandler(pocketService),
			Update:          handlers.NewUpdatePocketHandler(pocketService),
			RequestDeletion: handlers.NewRequestPocketDeletionCodeHandler(pocketService),
			ConfirmDeletion: handlers.NewDeletePocketHandler(pocketService),
		})
		handlers.RegisterTransactionHandlers(r, handlers.TransactionHandlers{
			Create:      handlers.NewCreateTransactionHandler(transactionService),
			List:        handlers.NewListTransactionsHandler(transactionService),
			Get:         handlers.NewGetTransactionHandler(transactionService),
			RequestCode: handlers.NewRequestConfirmationCodeHandler(transactionService),
			Confirm:     handlers.NewConfirmTransactionHandler(transactionService),
			Cancel:      handlers.NewCancelTransactionHandler(transactionService),
			Delete:      handlers.NewDeleteTransactionHandler(transactionService),
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// gRPC health server
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("gRPC listen failed: %w", err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	go func() {
		logger.Log.Infof("gRPC health server listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
		logger.Log.Errorw("server failed, stopping", "error", serveErr)
	}

	healthServer.Shutdown()
	grpcServer.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("Servers stopped gracefully")
	return serveErr
}
