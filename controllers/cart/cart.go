package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/apperr"
	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

// -------- Core Logic --------

// AddToCart copies a catalog item into the buyer's cart. The cart is
// constrained to one shop; the stored quantity is clamped to the stock
// observed right now, not the amount seen when the buyer browsed.
func AddToCart(db *gorm.DB, user *models.User, itemID uint, qty int) error {
	var item models.CatalogItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	if user.ShopInCart != nil && *user.ShopInCart != item.ShopID {
		return apperr.ErrCrossShopCart
	}
	if qty > item.Quantity {
		return apperr.ErrOutOfStock
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Merge with an existing line for the same item.
		merged := false
		for i := range user.Cart {
			if user.Cart[i].ItemID == item.ID {
				user.Cart[i].Quantity += qty
				if user.Cart[i].Quantity > item.Quantity {
					user.Cart[i].Quantity = item.Quantity
				}
				user.Cart[i].AddedAt = time.Now()
				if err := tx.Save(&user.Cart[i]).Error; err != nil {
					return err
				}
				merged = true
				break
			}
		}
		if !merged {
			line := models.CartLine{
				UserID:       user.ID,
				ItemSnapshot: item.Snapshot(),
				Quantity:     qty,
				AddedAt:      time.Now(),
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			user.Cart = append(user.Cart, line)
		}

		if user.ShopInCart == nil {
			shopID := item.ShopID
			user.ShopInCart = &shopID
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("shop_in_cart", shopID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IncreaseQuantity adjusts a cart line by delta, clamping to the catalog
// master's remaining headroom instead of failing. A line driven to zero or
// below is removed, and the last removal clears ShopInCart.
func IncreaseQuantity(db *gorm.DB, user *models.User, itemID uint, delta int) error {
	var line *models.CartLine
	idx := -1
	for i := range user.Cart {
		if user.Cart[i].ItemID == itemID {
			line = &user.Cart[i]
			idx = i
			break
		}
	}
	if line == nil {
		return apperr.ErrNotFound
	}

	var item models.CatalogItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrItemGone
		}
		return err
	}

	// Clamp the increase to what the shop can still supply.
	if line.Quantity+delta > item.Quantity {
		delta = item.Quantity - line.Quantity
	}
	newQty := line.Quantity + delta

	return db.Transaction(func(tx *gorm.DB) error {
		if newQty <= 0 {
			if err := tx.Delete(&models.CartLine{}, "id = ?", line.ID).Error; err != nil {
				return err
			}
			user.Cart = append(user.Cart[:idx], user.Cart[idx+1:]...)
			if len(user.Cart) == 0 {
				user.ShopInCart = nil
				if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
					Update("shop_in_cart", nil).Error; err != nil {
					return err
				}
			}
			return nil
		}
		line.Quantity = newQty
		return tx.Save(line).Error
	})
}

// AddToWishlist snapshots an in-stock catalog item. Nothing is reserved;
// wishlist entries go stale when the catalog changes.
func AddToWishlist(db *gorm.DB, user *models.User, itemID uint) error {
	var item models.CatalogItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if item.Quantity <= 0 {
		return apperr.ErrOutOfStock
	}
	entry := models.WishlistItem{
		UserID:       user.ID,
		ItemSnapshot: item.Snapshot(),
		AddedAt:      time.Now(),
	}
	return db.Create(&entry).Error
}

// -------- Handlers --------

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respond.Failure(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(v), true
}

// POST /user/addCart/:id/:quantity
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		itemID, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		qty, err := strconv.Atoi(c.Param("quantity"))
		if err != nil || qty < 1 {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid quantity"))
			return
		}
		if err := AddToCart(db, user, itemID, qty); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Success(c, http.StatusOK, user)
	}
}

// POST /user/cart/increase/:id/:quantity
func IncreaseQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		itemID, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		delta, err := strconv.Atoi(c.Param("quantity"))
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid quantity"))
			return
		}
		if err := IncreaseQuantity(db, user, itemID, delta); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Success(c, http.StatusOK, user)
	}
}

// POST /user/addWishlist/:id
func AddToWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		itemID, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		if err := AddToWishlist(db, user, itemID); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Success(c, http.StatusOK, user)
	}
}

// GET /user/Cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		respond.Success(c, http.StatusOK, user.Cart)
	}
}

// GET /user/Wishlist
func GetWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var wishlist []models.WishlistItem
		if err := db.Where("user_id = ?", user.ID).Find(&wishlist).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, wishlist)
	}
}
