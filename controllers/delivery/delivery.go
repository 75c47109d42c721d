package deliveryControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/apperr"
	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

// -------- Core Logic --------

// MarkDelivered moves one order from pending to history on both sides,
// matched strictly by order id. Both flips run in one transaction so the
// two aggregates never disagree about an order's state.
func MarkDelivered(db *gorm.DB, shop *models.Shop, userID uint, orderID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrUserNotFound
			}
			return err
		}

		res := tx.Model(&models.Order{}).
			Where("order_id = ? AND user_id = ? AND status = ?",
				orderID, user.ID, models.OrderStatusPending).
			Update("status", models.OrderStatusDelivered)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrOrderNotFound
		}

		// Shop side: only the requested order, never the buyer's other
		// pending deliveries.
		res = tx.Model(&models.Delivery{}).
			Where("order_id = ? AND shop_id = ? AND status = ?",
				orderID, shop.ID, models.DeliveryStatusPending).
			Update("status", models.DeliveryStatusDelivered)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrOrderNotFound
		}
		return nil
	})
	if err != nil && !apperr.IsBusiness(err) {
		zap.S().Errorw("delivery_reconciliation",
			"shop_id", shop.ID, "user_id", userID, "order_id", orderID, "err", err)
	}
	return err
}

// -------- Handlers --------

// POST /store/delivered/:userID/:orderID
func MarkDeliveredHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)

		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid userID"))
			return
		}
		orderID := c.Param("orderID")
		if orderID == "" {
			respond.Failure(c, http.StatusBadRequest, errors.New("orderID is required"))
			return
		}

		if err := MarkDelivered(db, shop, uint(userID), orderID); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Success(c, http.StatusOK, nil)
	}
}

// GET /store/Orders
func PendingDeliveriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)
		var deliveries []models.Delivery
		if err := db.Preload("Items").
			Where("shop_id = ? AND status = ?", shop.ID, models.DeliveryStatusPending).
			Order("created_at").
			Find(&deliveries).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, deliveries)
	}
}

// GET /store/OrderHistory
func DeliveryHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)
		var deliveries []models.Delivery
		if err := db.Preload("Items").
			Where("shop_id = ? AND status = ?", shop.ID, models.DeliveryStatusDelivered).
			Order("created_at").
			Find(&deliveries).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, deliveries)
	}
}
