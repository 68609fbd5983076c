package main

import (
	"os"
	"os/signal"
	"syscall"

	"ecotrade/config"
	"ecotrade/internal/mqhandler"
	"ecotrade/internal/repository"
	"ecotrade/internal/service/mailer"
	"ecotrade/internal/service/stocknotify"
	"ecotrade/pkg/db"
	"ecotrade/pkg/logger"
	"ecotrade/pkg/mq"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting ecotrade worker...",
		zap.String("db_host", cfg.DB.Host),
		zap.String("mq_url", cfg.MQ.URL),
	)

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	productRepo := repository.NewProductRepository(dbConn)
	stockNotificationRepo := repository.NewStockNotificationRepository(dbConn)

	mailService := mailer.New(cfg.Mail, cfg.App, log)
	stockNotifyService := stocknotify.NewService(
		stockNotificationRepo,
		productRepo,
		mailService,
		cfg.StockNotify.Concurrency,
		log,
	)

	handler := mqhandler.NewStockAvailableHandler(stockNotifyService, log)

	consumer, err := mq.NewConsumer(cfg.MQ.URL, "product.stock_available.q", "product.stock_available", log)
	if err != nil {
		log.Fatal("Failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	consumer.SetHandler(handler.Handle)

	go func() {
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("Consumer failed", zap.Error(err))
		}
	}()
	log.Info("product.stock_available consumer started")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker...")
	consumer.Stop()
	log.Info("Worker shutdown complete")
}
