package main

import (
	"context"
	"log/slog"
	"os"

	"flowershop/internal/config"
	"flowershop/internal/domain/model"
	"flowershop/internal/infra/db"
	infraRepo "flowershop/internal/infra/repository"
	"flowershop/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// 開発用のカタログ投入。既存の商品・カテゴリは消してから入れ直す。
func main() {
	telemetry.InitLogger()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err.Error())
		os.Exit(1)
	}

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

	ctx := context.Background()

	//古いデータを消す（明細→注文→顧客→商品→カテゴリの順）
	for _, m := range []interface{}{
		&model.StockMovement{},
		&model.OrderItem{},
		&model.Order{},
		&model.Customer{},
		&model.Product{},
		&model.Category{},
	} {
		if err := gormDB.WithContext(ctx).Unscoped().Where("1 = 1").Delete(m).Error; err != nil {
			slog.Error("cleanup failed", "error", err.Error())
			os.Exit(1)
		}
	}

	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)

	type seedCategory struct {
		category model.Category
		products []model.Product
	}

	seeds := []seedCategory{
		{
			category: model.Category{Name: "Roses", Slug: "roses", Description: "Classic and exotic roses"},
			products: []model.Product{
				{Name: "Red Roses Bouquet", Slug: "red-roses-bouquet", Description: "15 fresh red roses", Price: decimal.NewFromFloat(150.00), Stock: 50, IsActive: true},
				{Name: "White Roses Bouquet", Slug: "white-roses-bouquet", Description: "11 white roses", Price: decimal.NewFromFloat(120.00), Stock: 30, IsActive: true},
			},
		},
		{
			category: model.Category{Name: "Tulips", Slug: "tulips", Description: "Spring tulips of many sorts"},
			products: []model.Product{
				{Name: "Yellow Tulips", Slug: "yellow-tulips", Description: "Bunch of 9 yellow tulips", Price: decimal.NewFromFloat(65.00), Stock: 40, IsActive: true},
				{Name: "Tulip Mix", Slug: "tulip-mix", Description: "Mixed-color tulips", Price: decimal.NewFromFloat(80.00), Stock: 25, IsActive: true},
			},
		},
		{
			category: model.Category{Name: "Bouquets", Slug: "bouquets", Description: "Ready-made bouquets for any occasion"},
			products: []model.Product{
				{Name: "Spring Mood", Slug: "spring-mood", Description: "Seasonal mixed bouquet", Price: decimal.NewFromFloat(95.50), Stock: 20, IsActive: true},
				{Name: "Birthday Surprise", Slug: "birthday-surprise", Description: "Festive bouquet with gerberas", Price: decimal.NewFromFloat(110.00), Stock: 15, IsActive: true},
			},
		},
		{
			category: model.Category{Name: "Potted Plants", Slug: "potted-plants", Description: "House plants in pots"},
			products: []model.Product{
				{Name: "Orchid", Slug: "orchid", Description: "Phalaenopsis in a ceramic pot", Price: decimal.NewFromFloat(140.00), Stock: 10, IsActive: true},
				//売り切り商品の例（在庫ゼロ）
				{Name: "Bonsai", Slug: "bonsai", Description: "Small ficus bonsai", Price: decimal.NewFromFloat(250.00), Stock: 0, IsActive: true},
			},
		},
	}

	for _, s := range seeds {
		created, err := categoryRepo.Create(ctx, s.category)
		if err != nil {
			slog.Error("seed category failed", "slug", s.category.Slug, "error", err.Error())
			os.Exit(1)
		}
		for _, p := range s.products {
			p.CategoryID = created.ID
			if _, err := productRepo.Create(ctx, p); err != nil {
				slog.Error("seed product failed", "slug", p.Slug, "error", err.Error())
				os.Exit(1)
			}
		}
	}

	slog.Info("seed done", "categories", len(seeds))
}
