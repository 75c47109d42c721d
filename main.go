package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/auth"
	"github.com/whoisaditya/IWP-Backend/cache"
	"github.com/whoisaditya/IWP-Backend/config"
	"github.com/whoisaditya/IWP-Backend/logger"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	log, err := logger.Init(config.AppMode())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserToken{},
		&models.Address{},
		&models.Payment{},
		&models.CartLine{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderedItem{},
		&models.Shop{},
		&models.ShopToken{},
		&models.CatalogItem{},
		&models.Delivery{},
		&models.DeliveryItem{},
		&models.DemandRequest{},
	); err != nil {
		zap.S().Fatalw("auto-migrate failed", "err", err)
	}

	rdb := cache.New(config.RedisAddr())

	// Gin setup
	if config.AppMode() == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, rdb, auth.LogMailer{})

	addr := ":" + config.Port()
	zap.S().Infow("starting marketplace api", "addr", addr)
	if err := r.Run(addr); err != nil {
		zap.S().Fatalw("server exited", "err", err)
	}
}

func initDatabase() *gorm.DB {
	dsn := config.DatabaseURL()
	if dsn == "" {
		zap.S().Fatal("DATABASE_URL is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.S().Fatalw("database connection failed", "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Fatalw("database handle unavailable", "err", err)
	}
	sqlDB.SetMaxOpenConns(config.Int("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(config.Int("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db
}
