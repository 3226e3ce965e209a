package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"kidstore/internal/config"
	"kidstore/internal/database"
	"kidstore/internal/handlers"
	"kidstore/internal/logger"
	"kidstore/internal/router"
	"kidstore/internal/store"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	port := flag.String("port", cfg.Port, "listening port")
	flag.Parse()

	logConfig := &logger.ZapLoggerConfig{
		Encoding:          "json",
		Level:             cfg.LogLevel,
		DisableCaller:     cfg.LogNoCaller,
		DisableStacktrace: true,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger, err := logger.NewZapLogger(logConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer appLogger.Sync()
	zap.ReplaceGlobals(appLogger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	var db *mongo.Database
	if cfg.DatabaseURL != "" {
		client, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			appLogger.Error("mongo client not created", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					appLogger.Warn("mongo disconnect", zap.Error(err))
				}
			}()

			db = client.Database(cfg.DatabaseName)
			if err := database.Ping(context.Background(), client); err != nil {
				appLogger.Warn("mongo ping failed", zap.Error(err))
			} else {
				appLogger.Info("MongoDB connected", zap.String("db_name", db.Name()))
				if err := database.EnsureProductIndexes(db); err != nil {
					appLogger.Warn("product index warning", zap.Error(err))
				}
				if err := database.EnsureOrderIndexes(db); err != nil {
					appLogger.Warn("order index warning", zap.Error(err))
				}
			}
		}
	} else {
		appLogger.Warn("DATABASE_URL not set; store operations will fail")
	}

	docs := store.NewMongoStore(db, cfg.StoreTimeout)

	r := router.New(router.Deps{
		Docs:     docs,
		Products: store.NewProductRepository(docs),
		Orders:   store.NewOrderRepository(docs),
		Env: handlers.DiagnosticsEnv{
			DatabaseURLSet:  config.DatabaseURLSet(),
			DatabaseNameSet: config.DatabaseNameSet(),
		},
		AllowOrigins: cfg.AllowOrigins,
		Logger:       appLogger,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + *port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
