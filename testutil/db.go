// Package testutil provides the in-memory database and seed helpers the
// controller tests share.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/whoisaditya/IWP-Backend/models"
)

// NewDB opens a fresh in-memory sqlite database with all tables migrated.
// The pool is capped at one connection so concurrent test goroutines
// serialize the way a single shared database would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// MakeShop seeds a shop with sensible defaults.
func MakeShop(t *testing.T, db *gorm.DB, name string) *models.Shop {
	t.Helper()
	shop := models.Shop{
		Name:        name,
		Description: name + " description",
		Email:       name + "@shops.test",
		Password:    "not-a-real-hash",
		Owner:       "owner of " + name,
		Phone:       "12345",
		Rating:      5,
	}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}
	return &shop
}

// MakeItem seeds a catalog item owned by shop.
func MakeItem(t *testing.T, db *gorm.DB, shop *models.Shop, name string, cost float64, qty int) *models.CatalogItem {
	t.Helper()
	item := models.CatalogItem{
		ShopID:      shop.ID,
		Name:        name,
		Description: name + " description",
		UnitCost:    cost,
		Quantity:    qty,
		Tag:         models.TagFruits,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return &item
}

// MakeUser seeds an active buyer.
func MakeUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@buyers.test",
		Password: "not-a-real-hash",
		Gender:   "o",
		Age:      30,
		Phone:    "55555",
		Active:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

// AddCartLine seeds a cart line for item and pins the user's cart to the
// item's shop, bypassing the cart controller.
func AddCartLine(t *testing.T, db *gorm.DB, user *models.User, item *models.CatalogItem, qty int) {
	t.Helper()
	line := models.CartLine{
		UserID:       user.ID,
		ItemSnapshot: item.Snapshot(),
		Quantity:     qty,
		AddedAt:      time.Now(),
	}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("create cart line: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("shop_in_cart", item.ShopID).Error; err != nil {
		t.Fatalf("pin cart shop: %v", err)
	}
	ReloadUser(t, db, user)
}

// ReloadUser refreshes the aggregate the way the auth middleware loads it.
func ReloadUser(t *testing.T, db *gorm.DB, user *models.User) {
	t.Helper()
	var fresh models.User
	if err := db.Preload("Cart").First(&fresh, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	*user = fresh
}

// ReloadItem refreshes a catalog master.
func ReloadItem(t *testing.T, db *gorm.DB, item *models.CatalogItem) {
	t.Helper()
	var fresh models.CatalogItem
	if err := db.First(&fresh, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	*item = fresh
}

// ReloadShop refreshes a shop aggregate.
func ReloadShop(t *testing.T, db *gorm.DB, shop *models.Shop) {
	t.Helper()
	var fresh models.Shop
	if err := db.First(&fresh, "id = ?", shop.ID).Error; err != nil {
		t.Fatalf("reload shop: %v", err)
	}
	*shop = fresh
}
