package main

import (
	"context"
	"time"

	"ecotrade/config"
	"ecotrade/internal/api"
	"ecotrade/internal/repository"
	"ecotrade/internal/service/auth"
	"ecotrade/internal/service/catalog"
	"ecotrade/internal/service/mailer"
	"ecotrade/internal/service/newsletter"
	"ecotrade/internal/service/otp"
	"ecotrade/internal/service/servicereq"
	"ecotrade/internal/service/stocknotify"
	"ecotrade/internal/service/wishlist"
	"ecotrade/pkg/db"
	"ecotrade/pkg/logger"
	"ecotrade/pkg/mq"
	"ecotrade/pkg/outbox"
	"ecotrade/pkg/redis"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting ecotrade server...",
		zap.String("db_host", cfg.DB.Host),
		zap.String("port", cfg.Server.Port),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// Redis (OTP codes, cooldowns)
	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	// MQ publisher + outbox dispatcher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()
	dispatcher := outbox.NewDispatcher(outbox.NewRepository(dbConn), publisher, log)
	go dispatcher.Start(dispatcherCtx)

	// Repositories
	productRepo := repository.NewProductRepository(dbConn)
	stockNotificationRepo := repository.NewStockNotificationRepository(dbConn)
	wishlistRepo := repository.NewWishlistRepository(dbConn)
	newsletterRepo := repository.NewNewsletterRepository(dbConn)
	serviceRequestRepo := repository.NewServiceRequestRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)

	// Services
	mailService := mailer.New(cfg.Mail, cfg.App, log)
	catalogService := catalog.NewService(dbConn, productRepo, log)
	stockNotifyService := stocknotify.NewService(
		stockNotificationRepo,
		productRepo,
		mailService,
		cfg.StockNotify.Concurrency,
		log,
	)
	wishlistService := wishlist.NewService(wishlistRepo, productRepo, log)
	newsletterService := newsletter.NewService(newsletterRepo, mailService, log)
	otpService := otp.NewService(
		otp.NewRedisStore(rdb),
		otp.NewLogSender(log),
		time.Duration(cfg.OTP.TTLSeconds)*time.Second,
		time.Duration(cfg.OTP.CooldownSeconds)*time.Second,
		cfg.OTP.MaxAttempts,
		log,
	)
	serviceRequestService := servicereq.NewService(serviceRequestRepo, mailService, log)
	authService := auth.NewService(userRepo, cfg.JWT.Secret)

	// Router
	router := api.NewRouter(api.Handlers{
		Auth:              api.NewAuthHandler(authService),
		Product:           api.NewProductHandler(catalogService),
		StockNotification: api.NewStockNotificationHandler(stockNotifyService),
		Wishlist:          api.NewWishlistHandler(wishlistService),
		OTP:               api.NewOTPHandler(otpService),
		Newsletter:        api.NewNewsletterHandler(newsletterService),
		ServiceRequest:    api.NewServiceRequestHandler(serviceRequestService),
	}, cfg.JWT.Secret, dbConn, publisher)

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("Server start failed", zap.Error(err))
	}
}
