package storeControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/apperr"
	"github.com/whoisaditya/IWP-Backend/auth"
	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

type RegisterInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	Owner       string  `json:"owner" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Landmark    string  `json:"landmark"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /store/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		shop := models.Shop{
			Name:        in.Name,
			Description: in.Description,
			Email:       strings.ToLower(in.Email),
			Password:    hash,
			Owner:       in.Owner,
			Phone:       in.Phone,
			Rating:      5,
			Latitude:    in.Latitude,
			Longitude:   in.Longitude,
			Landmark:    in.Landmark,
		}
		if err := db.Create(&shop).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		token, err := auth.IssueToken(auth.SubjectShop, shop.ID)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		if err := db.Create(&models.ShopToken{ShopID: shop.ID, Token: token}).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		respond.Success(c, http.StatusCreated, gin.H{
			"token": token,
			"Shop":  shop,
		})
	}
}

// POST /store/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		var shop models.Shop
		if err := db.First(&shop, "email = ?", strings.ToLower(in.Email)).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("Unable to login"))
			return
		}
		if !auth.CheckPassword(shop.Password, in.Password) {
			respond.Failure(c, http.StatusBadRequest, errors.New("Invalid Credentials"))
			return
		}

		token, err := auth.IssueToken(auth.SubjectShop, shop.ID)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		if err := db.Create(&models.ShopToken{ShopID: shop.ID, Token: token}).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		respond.Success(c, http.StatusOK, gin.H{
			"token": token,
			"Shop":  shop,
		})
	}
}

// POST /store/logout
func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)
		token := c.GetString(middleware.CtxToken)

		if err := db.Where("shop_id = ? AND token = ?", shop.ID, token).
			Delete(&models.ShopToken{}).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusCreated, gin.H{"message": "Logged out!"})
	}
}

// POST /store/logoutAll
func LogoutAllHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)
		if err := db.Where("shop_id = ?", shop.ID).
			Delete(&models.ShopToken{}).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusCreated, gin.H{"message": "Logged out!"})
	}
}

// GET /stores/myStore
func MyStoreHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)
		var full models.Shop
		if err := db.Preload("Items").Preload("Deliveries.Items").
			Preload("DemandRequests").
			First(&full, "id = ?", shop.ID).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, full)
	}
}

// GET /store/user/:id
// Lets a shopkeeper look up a buyer's contact details for fulfilment.
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid user id"))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Error(c, apperr.ErrUserNotFound)
				return
			}
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, user)
	}
}
