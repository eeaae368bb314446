package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/config"
	"inkwell/database"
	"inkwell/graph"
	"inkwell/images"
	"inkwell/metrics"
	"inkwell/routes"
	"inkwell/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	log.Println("🚀 Starting Inkwell API...")

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration error: ", err)
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var client *mongo.Client
	var dbErr error
	for i := 1; i <= 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		client, dbErr = database.Connect(ctx, cfg.MongoURI)
		cancel()
		if dbErr == nil {
			break
		}
		log.Printf("❌ MongoDB connection attempt %d failed: %v", i, dbErr)
		time.Sleep(2 * time.Second)
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB: ", dbErr)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Println("❌ MongoDB disconnect error:", err)
		}
	}()

	log.Println("✅ MongoDB connected successfully")

	if err := os.MkdirAll(cfg.ImageDir, 0o755); err != nil {
		log.Fatal("❌ Failed to create image directory: ", err)
	}

	db := client.Database(cfg.Database)
	imageStore := &images.Store{Dir: cfg.ImageDir}

	resolver := &graph.Resolver{
		Users:  store.NewMongoUserStore(db),
		Posts:  store.NewMongoPostStore(client, db),
		Images: imageStore,
		Secret: cfg.JWTSecret,
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatal("❌ Failed to build GraphQL schema: ", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.New(routes.Deps{
		Cfg:       cfg,
		Schema:    schema,
		Images:    imageStore,
		Collector: collector,
		Registry:  registry,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
