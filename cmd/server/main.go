// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"covergate/internal/audit"
	"covergate/internal/health"
	"covergate/internal/identity"
	"covergate/internal/jwttoken"
	"covergate/internal/kyc"
	"covergate/internal/notification"
	"covergate/internal/payment"
	"covergate/internal/plan"
	planhandler "covergate/internal/plan/handler"
	"covergate/internal/platform/config"
	"covergate/internal/platform/database"
	"covergate/internal/platform/httpserver"
	"covergate/internal/platform/logger"
	"covergate/internal/platform/metrics"
	platformredis "covergate/internal/platform/redis"
	"covergate/internal/policy"
	"covergate/internal/pricing"
	"covergate/internal/registration"
	reghandler "covergate/internal/registration/handler"
	regservice "covergate/internal/registration/service"
	httptransport "covergate/internal/transport/http"
	"covergate/internal/underwriting"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	var (
		db  *sql.DB
		err error

		sessions     registration.Store
		plans        plan.Store
		declarations health.Store
		decisions    underwriting.Store
		payments     payment.Store
		policies     policy.Store
		auditStore   audit.Store

		sessionTx regservice.SessionTx
		uow       regservice.UnitOfWork
	)

	if cfg.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		db.SetMaxOpenConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := database.Migrate(context.Background(), db); err != nil {
			log.Error("schema migration failed", "error", err)
			os.Exit(1)
		}

		sessions = registration.NewPostgres(db)
		plans = plan.NewPostgres(db)
		declarations = health.NewPostgres(db)
		decisions = underwriting.NewPostgres(db)
		payments = payment.NewPostgres(db)
		policies = policy.NewPostgres(db)
		auditStore = audit.NewPostgres(db)
		uow = regservice.NewSQLUnitOfWork(db)
	} else {
		planStore := plan.NewInMemoryStore()
		plan.SeedCatalog(planStore)

		sessions = registration.NewInMemoryStore()
		plans = planStore
		declarations = health.NewInMemoryStore()
		decisions = underwriting.NewInMemoryStore()
		payments = payment.NewInMemoryStore()
		policies = policy.NewInMemoryStore()
		auditStore = audit.NewInMemoryStore()
		uow = regservice.PassthroughUnitOfWork{}
		log.Info("no postgres DSN configured, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessionTx = regservice.NewRedisSessionTx(redisClient.Client)
		log.Info("session locking via redis")
	} else {
		sessionTx = regservice.NewShardedSessionTx()
	}

	var sender notification.Sender = notification.NewLogSender(log)
	if cfg.KafkaBrokers != "" {
		kafkaSender, err := notification.NewKafkaSender(cfg.KafkaBrokers, notification.DefaultTopic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSender.Close()
		sender = kafkaSender
		log.Info("notifications via kafka", "brokers", cfg.KafkaBrokers)
	}
	notifier := notification.NewPublisher(log, 256)
	worker := notifier.NewWorker(sender, log)

	users := identity.NewSelfProvisioningStore()

	svc, err := regservice.New(regservice.Deps{
		Logger:       log,
		Metrics:      m,
		Sessions:     sessions,
		Plans:        plans,
		Declarations: declarations,
		Decisions:    decisions,
		Payments:     payments,
		Policies:     policies,
		Users:        users,
		Verifier:     kyc.NewSimulatedVerifier(),
		Engine:       underwriting.NewEngine(cfg.Underwriting),
		Notifier:     notifier,
		Auditor:      audit.NewPublisher(auditStore),
		SessionTx:    sessionTx,
		UnitOfWork:   uow,
	})
	if err != nil {
		log.Error("service wiring failed", "error", err)
		os.Exit(1)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	calculator := pricing.NewCalculator(plans, m)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Metrics:      m,
		JWTValidator: jwtService,
		Registration: reghandler.New(svc, log),
		Plans:        planhandler.New(plans, calculator, log),
		Ready: func() error {
			if db != nil {
				return db.Ping()
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting covergate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
