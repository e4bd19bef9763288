package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estatery-api-io/api/internal/config"
	"estatery-api-io/api/internal/container"
	"estatery-api-io/api/internal/indexer"
	"estatery-api-io/api/internal/routers"
	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	util.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	client, err := util.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		util.Log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	redisClient, err := util.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		util.Log.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redisClient.Close()

	if _, err := indexer.NewDefaultManager(client.Database(cfg.DatabaseName), nil).Create(ctx); err != nil {
		util.Log.WithError(err).Warn("some indexes could not be created")
	}

	sc, err := container.NewServiceContainer(cfg, client, redisClient)
	if err != nil {
		util.Log.WithError(err).Fatal("failed to build services")
	}
	if sc.Mailer != nil {
		sc.Mailer.Start()
		defer sc.Mailer.Stop()
	}

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           routers.InitRoute(sc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		util.Log.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	util.LogInfo("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		util.LogError("server forced to shutdown", err)
	}
}
