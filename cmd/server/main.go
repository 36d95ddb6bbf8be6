package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Wang-tianhao/vibrant-userguard/internal/config"
	"github.com/Wang-tianhao/vibrant-userguard/internal/logger"
	"github.com/Wang-tianhao/vibrant-userguard/internal/server"
	"github.com/Wang-tianhao/vibrant-userguard/internal/user"
	"github.com/Wang-tianhao/vibrant-userguard/jwtauth"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.New("INFO").Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	authCfg, err := jwtauth.NewConfig(
		jwtauth.WithHS256(cfg.JWTSecret),
		jwtauth.WithClockSkew(cfg.ClockSkew),
		jwtauth.WithLogger(log),
	)
	if err != nil {
		log.Error("failed to configure token verification", "err", err)
		os.Exit(1)
	}

	store := user.NewMemoryStore(user.SeedUsers()...)
	router := server.NewRouter(authCfg, store, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Addr(), router, log, cfg.ShutdownTimeout)
	if err := srv.Run(ctx); err != nil {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
}
