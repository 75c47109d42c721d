package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/auth"
)

// SetupRoutes is the single entry-point that wires up the buyer-facing and
// store-facing route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, mailer auth.Mailer) {
	SetupBuyerRoutes(r, db, rdb, mailer)
	SetupStoreRoutes(r, db)
}
