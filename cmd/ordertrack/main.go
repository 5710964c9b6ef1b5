package main

import (
	"context"
	"fmt"

	"github.com/toppingfrozen/ordertrack/internal/adapter/auth"
	"github.com/toppingfrozen/ordertrack/internal/adapter/config"
	"github.com/toppingfrozen/ordertrack/internal/adapter/handler/http"
	"github.com/toppingfrozen/ordertrack/internal/adapter/logger"
	"github.com/toppingfrozen/ordertrack/internal/adapter/storage"
	"github.com/toppingfrozen/ordertrack/internal/adapter/storage/files"
	"github.com/toppingfrozen/ordertrack/internal/adapter/storage/repository"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}

	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	photoStore, err := files.NewStore(conf.Uploads)
	if err != nil {
		log.Error("photo store creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, tokenService, photoStore,
		domain.DefaultCarriers(), log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	receiptHandler, err := http.NewReceiptHandler(svc, photoStore, log.Named("Receipt handler"))
	if err != nil {
		log.Error("receipt handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, userHandler, orderHandler, receiptHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
