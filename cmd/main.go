package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/court-survey/config"
	"github.com/vnkhanh/court-survey/controllers"
	"github.com/vnkhanh/court-survey/logger"
	"github.com/vnkhanh/court-survey/middleware"
	"github.com/vnkhanh/court-survey/routes"
	"github.com/vnkhanh/court-survey/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("main.config: ", err)
	}
	if err := logger.Setup(cfg.LogLevel); err != nil {
		logger.Warnf("LOG_LEVEL %q không hợp lệ, dùng info", cfg.LogLevel)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Kết nối DB + migrate
	if err := config.ConnectDB(cfg); err != nil {
		logger.Fatal("main.db: ", err)
	}

	if cfg.UseSupabase() {
		controllers.Storage = utils.NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	} else {
		controllers.Storage = utils.NewLocalStorage(cfg.MediaRoot)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Fatal("main.proxies: ", err)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Court survey server is running")
	})
	r.Static(strings.TrimSuffix(utils.MediaURLPrefix, "/"), cfg.MediaRoot)

	routes.SetupRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go middleware.SubmissionLimiter.RunCleanup(ctx.Done())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown")
		}
	}()

	logger.Infof("Server listening on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("main.server: ", err)
	}
	logger.Info("Server closed")
}
