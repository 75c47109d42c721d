package catalogControllers

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

type AddItemInput struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description" binding:"required"`
	UnitCost    float64        `json:"unit_cost" binding:"required"`
	Quantity    int            `json:"quantity" binding:"required,min=0"`
	Tag         models.ItemTag `json:"tag" binding:"required"`
}

type UpdateItemInput struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	UnitCost    *float64        `json:"unit_cost"`
	Quantity    *int            `json:"quantity"`
	Tag         *models.ItemTag `json:"tag"`
}

// POST /myStore/addItem
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)

		var in AddItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}
		if !models.ValidTag(in.Tag) {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid tag"))
			return
		}

		item := models.CatalogItem{
			ShopID:      shop.ID,
			Name:        in.Name,
			Description: in.Description,
			UnitCost:    in.UnitCost,
			Quantity:    in.Quantity,
			Tag:         in.Tag,
		}
		if err := db.Create(&item).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, item)
	}
}

// GET /myProducts
func MyProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)
		var items []models.CatalogItem
		if err := db.Where("shop_id = ?", shop.ID).Order("id").Find(&items).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, items)
	}
}

// PATCH /myProducts/:id
func UpdateItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid item id"))
			return
		}

		var in UpdateItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.UnitCost != nil {
			updates["unit_cost"] = *in.UnitCost
		}
		if in.Quantity != nil {
			if *in.Quantity < 0 {
				respond.Failure(c, http.StatusBadRequest, errors.New("quantity cannot be negative"))
				return
			}
			updates["quantity"] = *in.Quantity
		}
		if in.Tag != nil {
			if !models.ValidTag(*in.Tag) {
				respond.Failure(c, http.StatusBadRequest, errors.New("invalid tag"))
				return
			}
			updates["tag"] = *in.Tag
		}
		if len(updates) == 0 {
			respond.Failure(c, http.StatusBadRequest, errors.New("nothing to update"))
			return
		}

		res := db.Model(&models.CatalogItem{}).
			Where("id = ? AND shop_id = ?", id, shop.ID).
			Updates(updates)
		if res.Error != nil {
			respond.Failure(c, http.StatusInternalServerError, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respond.Error(c, apperr.ErrNotFound)
			return
		}

		var item models.CatalogItem
		if err := db.First(&item, "id = ?", id).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, item)
	}
}

// PATCH /myProducts/delete/:id
func DeleteItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid item id"))
			return
		}

		res := db.Where("id = ? AND shop_id = ?", id, shop.ID).
			Delete(&models.CatalogItem{})
		if res.Error != nil {
			respond.Failure(c, http.StatusInternalServerError, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respond.Error(c, apperr.ErrNotFound)
			return
		}
		respond.Success(c, http.StatusOK, gin.H{"deleted": id})
	}
}
