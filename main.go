package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/config"
	"github.com/princinho/schoolpanel/controllers"
	"github.com/princinho/schoolpanel/database"
	"github.com/princinho/schoolpanel/dto"
	"github.com/princinho/schoolpanel/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(os.Stdout, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Connect(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo disconnect", "error", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	users := database.NewUserStore(db)
	tokens, err := auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.TokenTTL)
	if err != nil {
		return err
	}
	authService, err := auth.NewService(users, tokens, auth.WithHashCost(cfg.BcryptCost))
	if err != nil {
		return err
	}

	//seeding admin user
	if cfg.SeedAdmin() {
		if err := utils.SeedAdminUser(ctx, users, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost, logger); err != nil {
			return err
		}
	}

	if err := dto.RegisterValidators(); err != nil {
		return err
	}

	app := &controllers.App{
		Auth:   authService,
		Users:  users,
		Docs:   database.NewDocuments(db),
		Limits: utils.QueryLimits{Default: cfg.DefaultReadLimit, Max: cfg.MaxReadLimit},
		Images: utils.NewImageValidator(cfg.ValidateImages, cfg.MaxImageSizeMB),
		Logger: logger,
	}

	r := gin.New()
	r.Use(cors.New(corsConfig(cfg, logger)))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	app.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(cfg *config.Config, logger *slog.Logger) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		cc.AllowAllOrigins = true
		return cc
	}

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	logger.Info("cors origins", "allowed", cfg.AllowedOrigins)
	cc.AllowOriginFunc = func(origin string) bool {
		return allowedOrigins[origin]
	}
	cc.AllowCredentials = true
	return cc
}
