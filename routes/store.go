package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/whoisaditya/IWP-Backend/controllers/catalog"
	deliveryControllers "github.com/whoisaditya/IWP-Backend/controllers/delivery"
	demandControllers "github.com/whoisaditya/IWP-Backend/controllers/demand"
	storeControllers "github.com/whoisaditya/IWP-Backend/controllers/store"
	"github.com/whoisaditya/IWP-Backend/middleware"
)

// SetupStoreRoutes registers every store-facing endpoint.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	// Public
	r.POST("/store/register", storeControllers.RegisterHandler(db))
	r.POST("/store/login", storeControllers.LoginHandler(db))

	// Authenticated shopkeeper
	authed := r.Group("/", middleware.StoreAuth(db))
	{
		authed.POST("/store/logout", storeControllers.LogoutHandler(db))
		authed.POST("/store/logoutAll", storeControllers.LogoutAllHandler(db))
		authed.GET("/stores/myStore", storeControllers.MyStoreHandler(db))
		authed.GET("/store/user/:id", storeControllers.GetUserHandler(db))

		authed.POST("/myStore/addItem", catalogControllers.AddItemHandler(db))
		authed.GET("/myProducts", catalogControllers.MyProductsHandler(db))
		authed.GET("/myProducts/export", catalogControllers.ExportProductsHandler(db))
		authed.PATCH("/myProducts/delete/:id", catalogControllers.DeleteItemHandler(db))
		authed.PATCH("/myProducts/:id", catalogControllers.UpdateItemHandler(db))

		authed.GET("/store/Orders", deliveryControllers.PendingDeliveriesHandler(db))
		authed.GET("/store/OrderHistory", deliveryControllers.DeliveryHistoryHandler(db))
		authed.POST("/store/delivered/:userID/:orderID", deliveryControllers.MarkDeliveredHandler(db))

		authed.GET("/store/requested", demandControllers.RequestedItemsHandler(db))
		authed.PATCH("/requests/remove/:id", demandControllers.RemoveRequestHandler(db))
	}
}
