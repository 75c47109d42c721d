package checkoutControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/whoisaditya/IWP-Backend/apperr"
	"github.com/whoisaditya/IWP-Backend/cache"
	"github.com/whoisaditya/IWP-Backend/config"
	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

type CheckoutRequest struct {
	Cost    float64 `json:"cost" binding:"required"`
	Address string  `json:"address" binding:"required"`
}

// -------- Core Logic --------

// Checkout converts the buyer's cart into a committed order against both
// aggregates. All mutations run in one storage transaction, so a failure
// anywhere rolls back stock, demand, counters and both order records
// together. The total is trusted from the caller; no server-side price
// recomputation happens here.
func Checkout(db *gorm.DB, user *models.User, req CheckoutRequest) (*models.Order, error) {
	if user.ShopInCart == nil || len(user.Cart) == 0 {
		return nil, apperr.ErrEmptyCart
	}
	missingMode := config.CheckoutMissingItem()

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var shop models.Shop
		if err := tx.First(&shop, "id = ?", *user.ShopInCart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		// One transaction id correlates the buyer's order and the shop's
		// delivery until fulfilment.
		orderID := uuid.NewString()

		var orderedItems []models.OrderedItem
		var deliveryItems []models.DeliveryItem
		soldEvents := 0

		for _, line := range user.Cart {
			var item models.CatalogItem
			err := tx.First(&item, "id = ? AND shop_id = ?", line.ItemID, shop.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The master was deleted after the line entered the cart.
				if missingMode == config.MissingItemSkip {
					zap.S().Warnw("checkout skipping removed catalog item",
						"order_id", orderID, "item_id", line.ItemID, "item", line.Name)
					continue
				}
				return apperr.ErrItemGone
			}
			if err != nil {
				return err
			}

			// Guarded decrement: demand and stock move together, and the
			// WHERE clause keeps stock from ever going negative under
			// concurrent checkouts.
			res := tx.Model(&models.CatalogItem{}).
				Where("id = ? AND quantity >= ?", item.ID, line.Quantity).
				Updates(map[string]interface{}{
					"quantity": gorm.Expr("quantity - ?", line.Quantity),
					"demand":   gorm.Expr("demand + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.InsufficientStock(item.Name)
			}

			item.Quantity -= line.Quantity
			item.Demand++
			if item.Demand > shop.MaxDemand {
				shop.MaxDemand = item.Demand
				shop.TrendingItem = item.Snapshot()
				shop.TrendingDemand = item.Demand
			}
			soldEvents++

			orderedItems = append(orderedItems, models.OrderedItem{
				OrderID:      orderID,
				ItemSnapshot: line.ItemSnapshot,
				Quantity:     line.Quantity,
			})
			deliveryItems = append(deliveryItems, models.DeliveryItem{
				DeliveryOrderID: orderID,
				ItemSnapshot:    line.ItemSnapshot,
				Quantity:        line.Quantity,
			})
		}

		// Buyer aggregate first, then shop, inside the same transaction.
		order = models.Order{
			OrderID:   orderID,
			UserID:    user.ID,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			Address:   req.Address,
			TotalCost: req.Cost,
			Status:    models.OrderStatusPending,
			Items:     orderedItems,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		payment := models.Payment{
			UserID:    user.ID,
			TotalCost: req.Cost,
			ShopName:  shop.Name,
			Date:      time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("shop_in_cart", nil).Error; err != nil {
			return err
		}

		delivery := models.Delivery{
			OrderID:   orderID,
			ShopID:    shop.ID,
			UserID:    user.ID,
			UserName:  user.Name,
			UserEmail: user.Email,
			UserPhone: user.Phone,
			Address:   req.Address,
			Status:    models.DeliveryStatusPending,
			Items:     deliveryItems,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}

		shop.ProfitsDaily += req.Cost
		shop.ProfitsMonthly += req.Cost
		shop.ProfitsYearly += req.Cost
		shop.TotalItemsSold += soldEvents
		if err := tx.Omit(clause.Associations).Save(&shop).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if !apperr.IsBusiness(err) {
			// With both writes inside one transaction there is no partial
			// state to repair, but a commit failure is still the event a
			// reconciliation job would key on.
			zap.S().Errorw("checkout_reconciliation",
				"user_id", user.ID, "shop_id", user.ShopInCart, "err", err)
		}
		return nil, err
	}

	user.Cart = nil
	user.ShopInCart = nil
	return &order, nil
}

// -------- Handler --------

// POST /user/checkout
func CheckoutHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		order, err := Checkout(db, user, req)
		if err != nil {
			respond.Error(c, err)
			return
		}

		// Demand moved, so the cached trending projection is stale.
		cache.InvalidateTrending(c.Request.Context(), rdb)

		respond.Success(c, http.StatusOK, gin.H{"order": order})
	}
}
