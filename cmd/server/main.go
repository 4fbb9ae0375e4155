package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"auth-backend/internal/auth"
	"auth-backend/internal/config"
	"auth-backend/internal/db"
	"auth-backend/internal/email"
	"auth-backend/internal/routes"
	"auth-backend/internal/service"
	"auth-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}

	users := store.NewGormUsers(database)
	otps := store.NewGormOTPs(database)

	tokens := auth.NewTokenIssuer(
		cfg.JwtAccessSecret,
		cfg.JwtRefreshSecret,
		time.Duration(cfg.JwtAccessMinutes)*time.Minute,
		time.Duration(cfg.JwtRefreshHours)*time.Hour,
	)
	otpEngine := auth.NewOTPEngine(otps, time.Duration(cfg.OtpSeconds)*time.Second)

	var sender email.Sender = email.NoopSender{}
	if cfg.SmtpHost != "" {
		sender = email.NewSMTPSender(email.Config{
			Host:     cfg.SmtpHost,
			Port:     cfg.SmtpPort,
			Username: cfg.SmtpUser,
			Password: cfg.SmtpPass,
			From:     cfg.SmtpFrom,
		})
	}

	sessionService := service.NewSessionService(users, otpEngine, tokens, sender)
	userService := service.NewUserService(users, tokens)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, sessionService, userService, tokens, cfg.AllowedOriginsRaw)

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
