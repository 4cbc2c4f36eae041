package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/metrics"
	"food-ordering-api/middleware"
	"food-ordering-api/repository"
	"food-ordering-api/routes"
	"food-ordering-api/seed"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("Server stopped with an error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := config.OpenDB(cfg.DBDriver, cfg.DBSource, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	if err := repository.NewUserRepository(db).EnsureRoles(ctx); err != nil {
		return err
	}
	if cfg.Seed {
		data, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(ctx, db, data, bcrypt.DefaultCost, log); err != nil {
			return err
		}
	}
	log.WithField("driver", cfg.DBDriver).Info("Database ready")

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), metrics.Instrument(),
		middleware.CORS(cfg.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Food Ordering API",
			"docs":    "/api/order-statuses",
			"health":  "/health",
			"roles":   []string{"customer", "owner", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, routes.Deps{
		DB:     db,
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Log:    log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
