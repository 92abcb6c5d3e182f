package main

import (
	"log/slog"
	"os"

	"flowershop/internal/config"
	"flowershop/internal/domain/model"
	"flowershop/internal/handler"
	"flowershop/internal/infra/cache"
	"flowershop/internal/infra/db"
	"flowershop/internal/infra/event"
	infraRepo "flowershop/internal/infra/repository"
	"flowershop/internal/server"
	"flowershop/internal/telemetry"
	"flowershop/internal/usecase"
	"flowershop/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	telemetry.InitLogger()

	//.envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err.Error())
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		slog.Error("db connect failed", "error", err.Error())
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockMovement{},
	); err != nil {
		slog.Error("migrate failed", "error", err.Error())
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//商品キャッシュ（REDIS_ADDRが無ければ無効）
	var productCache cache.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.NewRedisCache(cfg.RedisAddr, "flowershop")
	} else {
		productCache = cache.NewNoopCache()
	}

	//注文イベント（RABBITMQ_URLが無ければ発行しない）
	var publisher event.Publisher
	if cfg.RabbitMQURL != "" {
		p, err := event.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			slog.Error("rabbitmq connect failed", "error", err.Error())
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
	} else {
		publisher = event.NewNoopPublisher()
	}

	//Usecase生成
	orderValidator := validator.NewOrderValidator()
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, productCache)
	orderUC := usecase.NewOrderUsecase(txManager, orderValidator, productCache, publisher)
	fulfillmentUC := usecase.NewFulfillmentUsecase(txManager, productCache)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(orderUC, fulfillmentUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, productH, orderH); err != nil {
		slog.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}
