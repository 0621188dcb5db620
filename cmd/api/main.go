package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"absensi/internal/absensi"
	"absensi/internal/auth"
	"absensi/internal/blob"
	"absensi/internal/config"
	"absensi/internal/handler"
	"absensi/internal/httpmiddleware"
	"absensi/internal/roster"
	"absensi/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	mongoDB, err := store.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoDB.Close(ctx)
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	if cfg.BlobToken == "" {
		log.Println("WARNING: BLOB_READ_WRITE_TOKEN not set, photo uploads will fail")
	}
	blobClient := blob.New(cfg.BlobAPIURL, cfg.BlobToken)

	recordSvc := absensi.NewService(absensi.NewRepository(mongoDB.DB), blobClient)
	rosterSvc := roster.NewService(roster.NewRepository(mongoDB.DB))

	seedCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := rosterSvc.Seed(seedCtx); err != nil {
		log.Printf("warning: roster seed failed: %v", err)
	}

	h := handler.New(recordSvc, rosterSvc, mongoDB, redisClient, handler.AuthConfig{
		User:         cfg.AdminUser,
		Pass:         cfg.AdminPass,
		Issuer:       cfg.JWTIssuer,
		SigningKey:   cfg.JWTSigningKey,
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: gin.Mode() == gin.ReleaseMode,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.Metrics())
	r.Use(httpmiddleware.NewRateLimiter(redisClient.Client, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Pages
	r.StaticFile("/", cfg.WebDir+"/dashboard.html")
	r.StaticFile("/dashboard", cfg.WebDir+"/dashboard.html")
	r.StaticFile("/absen", cfg.WebDir+"/absen.html")
	r.Static("/static", cfg.WebDir+"/static")

	// Open routes
	r.POST("/submit-absensi", h.SubmitAbsensi)
	r.GET("/api/employees", h.Employees)
	r.GET("/api/health", h.Health)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)

	// Protected routes: everything an administrator does
	admin := r.Group("/api", auth.SessionAuth(cfg.JWTSigningKey, cfg.JWTIssuer, redisClient))
	admin.GET("/absensi", h.ListAbsensi)
	admin.GET("/export-excel", h.ExportExcel)
	admin.GET("/export-excel-per-nama", h.ExportExcelPerNama)
	admin.DELETE("/absensi/:id", h.DeleteAbsensi)
	admin.POST("/absensi/delete-multiple", h.DeleteMultiple)
	admin.GET("/pegawai", h.ListPegawai)
	admin.POST("/pegawai", h.AddPegawai)
	admin.DELETE("/pegawai/:id", h.DeletePegawai)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
