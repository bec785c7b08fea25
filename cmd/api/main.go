package main

import (
	"log"

	"menutotem/internal/config"
	"menutotem/internal/domain/model"
	"menutotem/internal/handler"
	"menutotem/internal/infra/billing"
	"menutotem/internal/infra/db"
	infraRepo "menutotem/internal/infra/repository"
	"menutotem/internal/server"
	"menutotem/internal/usecase"
	"menutotem/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envはローカル用。本番は環境変数で渡すので無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Restaurant{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.QRCode{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	qrRepo := infraRepo.NewQRCodeGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//決済プロセッサ関数クライアント
	billingClient := billing.NewClient(cfg.FunctionsURL)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator(userRepo))
	productUC := usecase.NewProductUsecase(productRepo, restaurantRepo)
	orderUC := usecase.NewOrderUsecase(txManager, auditRepo)
	kitchenUC := usecase.NewKitchenUsecase(txManager, auditRepo)
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo)
	qrUC := usecase.NewQRCodeUsecase(qrRepo, restaurantRepo)
	billingUC := usecase.NewBillingUsecase(billingClient, restaurantRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC, cfg),
		Product:    handler.NewProductHandler(productUC),
		Order:      handler.NewOrderHandler(orderUC),
		Kitchen:    handler.NewKitchenHandler(kitchenUC),
		Restaurant: handler.NewRestaurantHandler(restaurantUC),
		QRCode:     handler.NewQRCodeHandler(qrUC),
		Billing:    handler.NewBillingHandler(billingUC),
	}

	//Server起動
	if err := server.Start(cfg, userRepo, handlers); err != nil {
		log.Fatalf("server: %v", err)
	}
}
