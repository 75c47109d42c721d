package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/auth"
	cartControllers "github.com/whoisaditya/IWP-Backend/controllers/cart"
	checkoutControllers "github.com/whoisaditya/IWP-Backend/controllers/checkout"
	demandControllers "github.com/whoisaditya/IWP-Backend/controllers/demand"
	discoveryControllers "github.com/whoisaditya/IWP-Backend/controllers/discovery"
	userControllers "github.com/whoisaditya/IWP-Backend/controllers/user"
	"github.com/whoisaditya/IWP-Backend/middleware"
)

// SetupBuyerRoutes registers every buyer-facing endpoint. Route shapes
// match the original clients.
func SetupBuyerRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, mailer auth.Mailer) {
	// Public
	r.POST("/user/signup", userControllers.SignupHandler(db, mailer))
	r.GET("/user/confirmation/:token", userControllers.ConfirmEmailHandler(db))
	r.POST("/user/login", userControllers.LoginHandler(db))
	r.GET("/trending", discoveryControllers.TrendingHandler(db, rdb))
	r.GET("/searchShops", discoveryControllers.SearchShopsHandler(db))
	r.GET("/searchItem/:id", discoveryControllers.SearchItemsHandler(db))
	r.GET("/shop/:shopID", discoveryControllers.ShopProfileHandler(db))

	// Authenticated buyer
	authed := r.Group("/", middleware.UserAuth(db))
	{
		authed.POST("/user/logout", userControllers.LogoutHandler(db))
		authed.POST("/user/logoutAll", userControllers.LogoutAllHandler(db))
		authed.GET("/user/me", userControllers.MeHandler(db))
		authed.PATCH("/user/me/update", userControllers.UpdateUserHandler(db))
		authed.DELETE("/user/delete", userControllers.DeactivateUserHandler(db))
		authed.POST("/user/me/addAddress", userControllers.AddAddressHandler(db))
		authed.PATCH("/user/address", userControllers.RemoveAddressHandler(db))
		authed.GET("/user/paymentHistory", userControllers.PaymentHistoryHandler(db))
		authed.GET("/user/Orders", userControllers.PendingOrdersHandler(db))
		authed.GET("/user/OrderHistory", userControllers.OrderHistoryHandler(db))

		authed.POST("/user/addCart/:id/:quantity", cartControllers.AddToCartHandler(db))
		authed.POST("/user/cart/increase/:id/:quantity", cartControllers.IncreaseQuantityHandler(db))
		authed.POST("/user/addWishlist/:id", cartControllers.AddToWishlistHandler(db))
		authed.GET("/user/Cart", cartControllers.GetCartHandler(db))
		authed.GET("/user/Wishlist", cartControllers.GetWishlistHandler(db))

		authed.POST("/user/checkout", checkoutControllers.CheckoutHandler(db, rdb))
		authed.POST("/user/requestItem", demandControllers.RequestItemHandler(db))
	}
}
