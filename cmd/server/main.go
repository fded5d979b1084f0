// @title         crystalices API
// @version       1.0
// @description   Бэкенд Crystal Ices: аккаунты и подтверждение email, каталог оборудования, персонал, заявки на аренду, рассылка и вакансии.
// @BasePath      /
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"

	// internal imports
	"github.com/crystalices/backend/api/http"
	"github.com/crystalices/backend/api/http/handlers"
	"github.com/crystalices/backend/api/http/presenter"
	_ "github.com/crystalices/backend/docs"
	"github.com/crystalices/backend/pkg/auth"
	"github.com/crystalices/backend/pkg/careers"
	"github.com/crystalices/backend/pkg/config"
	"github.com/crystalices/backend/pkg/equipment"
	"github.com/crystalices/backend/pkg/health"
	"github.com/crystalices/backend/pkg/health/checkers"
	"github.com/crystalices/backend/pkg/inquiry"
	"github.com/crystalices/backend/pkg/logging"
	"github.com/crystalices/backend/pkg/mail"
	"github.com/crystalices/backend/pkg/metrics"
	"github.com/crystalices/backend/pkg/newsletter"
	"github.com/crystalices/backend/pkg/queue"
	"github.com/crystalices/backend/pkg/ratelimit"
	pgrepo "github.com/crystalices/backend/pkg/repository/postgres"
	"github.com/crystalices/backend/pkg/security/jwt"
	"github.com/crystalices/backend/pkg/staff"
	"github.com/crystalices/backend/pkg/storage/postgres"
	"github.com/crystalices/backend/pkg/upload"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()
	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		rdb = redis.NewClient(opt)
		defer rdb.Close()
	}

	m := metrics.New()

	// Outbound mail: Resend when configured, otherwise the log sender.
	var delivery mail.Sender = mail.NewLogSender(log)
	if cfg.Mail.ResendAPIKey != "" {
		delivery = mail.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, log)
	} else if !cfg.IsDevelopment() {
		log.Warn().Msg("RESEND_API_KEY not set, emails are only logged")
	}
	delivery = m.InstrumentSender(delivery)

	sender := delivery
	var worker *queue.Worker
	if cfg.Mail.Queue {
		redisOpt, err := queue.RedisOpt(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("queue redis")
		}
		enq := queue.NewEnqueuer(redisOpt, log)
		defer enq.Close()
		sender = enq
		worker = queue.NewWorker(redisOpt, delivery, cfg.Mail.Workers, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Error().Err(err).Msg("email worker stopped")
			}
		}()
	}
	notifier := mail.NewNotifier(sender, cfg.JWT.VerificationTTL)

	images, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir")
	}

	// Wire dependencies (Clean Architecture)
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer)
	authUC := auth.NewAuthService(
		pgrepo.NewUserRepository(pool),
		tokens,
		notifier,
		auth.NewBcryptHasher(auth.DefaultBcryptCost),
		auth.Options{
			FrontendURL:     cfg.FrontendURL,
			SessionTTL:      cfg.JWT.SessionTTL,
			VerificationTTL: cfg.JWT.VerificationTTL,
		},
		log,
	)
	equipmentUC := equipment.NewService(pgrepo.NewEquipmentRepository(pool))
	staffUC := staff.NewService(pgrepo.NewStaffRepository(pool))
	inquiryUC := inquiry.NewService(pgrepo.NewInquiryRepository(pool), notifier, log)
	newsletterUC := newsletter.NewService(pgrepo.NewNewsletterRepository(pool))
	careersUC := careers.NewService(pgrepo.NewApplicationRepository(pool))

	// Health service: compose checkers
	var redisChecker health.Checker
	if rdb != nil {
		redisChecker = checkers.NewRedisChecker(rdb)
	}
	readiness := health.NewService(checkers.NewPostgresChecker(pool), redisChecker)

	limiter, err := ratelimit.New(cfg.RateLimit, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("rate limiter")
	}

	app := fiber.New(fiber.Config{
		AppName:      "crystalices",
		ErrorHandler: presenter.ErrorHandler(log),
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logging.Middleware(log))
	app.Use(m.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: !slices.Contains(cfg.CORSOrigins, "*"),
	}))

	// Register routes
	http.Register(app, http.Handlers{
		Auth:       handlers.NewAuthHandler(authUC, m, log),
		Equipment:  handlers.NewEquipmentHandler(equipmentUC, images, cfg.BackendURL, log),
		Staff:      handlers.NewStaffHandler(staffUC, images, cfg.BackendURL, log),
		Inquiry:    handlers.NewInquiryHandler(inquiryUC, log),
		Newsletter: handlers.NewNewsletterHandler(newsletterUC, log),
		Careers:    handlers.NewCareersHandler(careersUC, log),
		Health:     handlers.NewHealthHandler(readiness, log),
	}, http.Middleware{
		Session:   jwt.NewAuthMiddleware(tokens),
		RateLimit: ratelimit.Middleware(limiter, log),
		Metrics:   m.Handler(),
		Docs:      swagger.HandlerDefault,
		UploadDir: images.Dir(),
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if worker != nil {
			worker.Shutdown()
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	// Start server
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("HTTP server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
