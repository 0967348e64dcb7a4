package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/sketchquiz/config"
	"github.com/lshigami/sketchquiz/database"
	_ "github.com/lshigami/sketchquiz/docs" // Swagger docs
	"github.com/lshigami/sketchquiz/internal/cache"
	"github.com/lshigami/sketchquiz/internal/controller/game"
	"github.com/lshigami/sketchquiz/internal/events"
	"github.com/lshigami/sketchquiz/internal/logger"
	"github.com/lshigami/sketchquiz/internal/middleware"
	"github.com/lshigami/sketchquiz/internal/model"
	"github.com/lshigami/sketchquiz/internal/monitoring"
	"github.com/lshigami/sketchquiz/internal/repository"
	"github.com/lshigami/sketchquiz/internal/service"
	"github.com/lshigami/sketchquiz/internal/storage"
	"github.com/lshigami/sketchquiz/internal/tracing"
	"github.com/lshigami/sketchquiz/internal/validation"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title SketchQuiz API
// @version 1.0
// @description Drawing game API: players draw the answer to a question, a vision model captions the drawing and the caption is graded against the expected answer.
// @host localhost:3000
// @BasePath /
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewSQLDB,
			NewGinEngine,
		),

		// Optional infrastructure, no-ops unless configured
		fx.Provide(
			NewQuestionCache,
			NewImageArchive,
			NewResultPublisher,
			NewInferenceGateway,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewResultRepository,
		),

		fx.Provide(
			service.NewQuestionService,
			service.NewResultService,
			service.NewGradingService,
		),

		fx.Provide(
			game.NewGameController,
			func(db *sql.DB) *game.HealthController { return game.NewHealthController(db) },
		),

		fx.Invoke(ConfigureLogger),
		fx.Invoke(InitTracing),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedQuestions),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func ConfigureLogger(cfg *config.Config) {
	logger.Configure(cfg)
}

func NewSQLDB(db *gorm.DB) (*sql.DB, error) {
	return db.DB()
}

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if err := validation.Register(); err != nil {
		return nil, err
	}
	monitoring.Init()

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}
	r.Use(monitoring.MetricsMiddleware())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.Server.AllowedOrigins) == 0 || (len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", monitoring.PrometheusHandler())

	return r, nil
}

func NewQuestionCache(lc fx.Lifecycle, cfg *config.Config) service.QuestionCache {
	if cfg.Redis.Addr == "" {
		return service.NoopQuestionCache{}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c := cache.NewRedisQuestionCache(rdb, cfg.Redis.TTL)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, question cache will miss")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error { return c.Close() },
	})
	log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("Question cache enabled")
	return c
}

func NewImageArchive(lc fx.Lifecycle, cfg *config.Config) (service.ImageArchive, error) {
	if cfg.Minio.Endpoint == "" {
		return service.NoopImageArchive{}, nil
	}
	archive, err := storage.NewMinioImageArchive(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := archive.EnsureBucket(ctx); err != nil {
				log.Warn().Err(err).Msg("Drawing archive bucket not ready")
			}
			return nil
		},
	})
	log.Info().Str("endpoint", cfg.Minio.Endpoint).Str("bucket", cfg.Minio.Bucket).Msg("Drawing archive enabled")
	return archive, nil
}

func NewResultPublisher(lc fx.Lifecycle, cfg *config.Config) service.ResultPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return service.NoopResultPublisher{}
	}
	p := events.NewKafkaResultPublisher(cfg.Kafka.Brokers, cfg.Kafka.ResultsTopic)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error { return p.Close() },
	})
	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.ResultsTopic).Msg("Result events enabled")
	return p
}

func NewInferenceGateway(lc fx.Lifecycle, cfg *config.Config) (service.InferenceGateway, error) {
	var next service.InferenceGateway
	switch cfg.Inference.Provider {
	case "gemini":
		gw, err := service.NewGeminiGateway(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return gw.Close() },
		})
		next = gw
	default:
		next = service.NewOllamaGateway(cfg, &http.Client{})
	}
	log.Info().
		Str("provider", cfg.Inference.Provider).
		Dur("timeout", cfg.Inference.Timeout).
		Int("maxAttempts", cfg.Inference.MaxAttempts).
		Msg("Inference gateway configured")
	return service.NewBoundedGateway(cfg.Inference.Provider, next, cfg.Inference), nil
}

func InitTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if !cfg.Tracing.Enabled {
		return nil
	}
	tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error { return tp.Shutdown(ctx) },
	})
	log.Info().Str("collector", cfg.Tracing.CollectorEndpoint).Msg("Tracing enabled")
	return nil
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	gameCtrl *game.GameController,
	healthCtrl *game.HealthController,
) {
	router.GET("/healthz", healthCtrl.Healthz)
	gameCtrl.RegisterRoutes(router, middleware.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("SketchQuiz server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(&model.Question{}, &model.Result{}); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func SeedQuestions(cfg *config.Config, questions service.QuestionService) error {
	if cfg.SeedFile == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := questions.SeedIfEmpty(ctx, cfg.SeedFile)
	return err
}
