package demandControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/apperr"
	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

type RequestItemInput struct {
	ProdName string `json:"prodName" binding:"required"`
	Desc     string `json:"desc"`
	Qty      int    `json:"qty" binding:"required,min=1"`
}

// -------- Core Logic --------

// RequestItem fans a buyer's request out to every shop's demand ledger.
// Any shopkeeper may choose to stock the item, so the write is a
// broadcast, not targeted. A product name already present anywhere in the
// ledger rejects the whole request.
func RequestItem(db *gorm.DB, user *models.User, in RequestItemInput) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DemandRequest{}).
			Where("product_name = ?", in.ProdName).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrDuplicateRequest
		}

		var shopIDs []uint
		if err := tx.Model(&models.Shop{}).Pluck("id", &shopIDs).Error; err != nil {
			return err
		}
		if len(shopIDs) == 0 {
			return apperr.ErrNotFound
		}

		requests := make([]models.DemandRequest, 0, len(shopIDs))
		for _, shopID := range shopIDs {
			requests = append(requests, models.DemandRequest{
				ShopID:         shopID,
				ProductName:    in.ProdName,
				Description:    in.Desc,
				RequesterName:  user.Name,
				RequesterPhone: user.Phone,
				Quantity:       in.Qty,
			})
		}
		return tx.Create(&requests).Error
	})
}

// RemoveRequest deletes one entry from the calling shop's own ledger.
// There is deliberately no fan-out here: other shops keep their copy.
func RemoveRequest(db *gorm.DB, shop *models.Shop, requestID uint) error {
	res := db.Where("id = ? AND shop_id = ?", requestID, shop.ID).
		Delete(&models.DemandRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// -------- Handlers --------

// POST /user/requestItem
func RequestItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var in RequestItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}
		if err := RequestItem(db, user, in); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Success(c, http.StatusCreated, gin.H{
			"message": "Items requested were successfully broadcasted to nearby shopkeepers!",
		})
	}
}

// PATCH /requests/remove/:id
func RemoveRequestHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid request id"))
			return
		}
		if err := RemoveRequest(db, shop, uint(id)); err != nil {
			respond.Error(c, err)
			return
		}

		var remaining []models.DemandRequest
		if err := db.Where("shop_id = ?", shop.ID).Find(&remaining).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, gin.H{"itemsDemanded": remaining})
	}
}

// GET /store/requested
func RequestedItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)
		var requests []models.DemandRequest
		if err := db.Where("shop_id = ?", shop.ID).Find(&requests).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, requests)
	}
}
