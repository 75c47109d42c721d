package userControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/auth"
	"github.com/whoisaditya/IWP-Backend/config"
	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Gender   string `json:"gender" binding:"required,oneof=m f o"`
	Age      int    `json:"age" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AddAddressInput struct {
	Address string             `json:"address" binding:"required"`
	Type    models.AddressType `json:"type" binding:"required,oneof=home work other"`
}

type UpdateUserInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Age   *int    `json:"age"`
}

// POST /user/signup
// Creates an inactive account and issues a verification link through the
// mailer. The account cannot log in until the link is confirmed.
func SignupHandler(db *gorm.DB, mailer auth.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}
		if in.Age < 14 {
			respond.Failure(c, http.StatusBadRequest, errors.New("You are too young!"))
			return
		}

		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		user := models.User{
			Name:     in.Name,
			Email:    strings.ToLower(in.Email),
			Password: hash,
			Gender:   in.Gender,
			Age:      in.Age,
			Phone:    in.Phone,
		}
		if err := db.Create(&user).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		emailToken, err := auth.IssueEmailToken(user.ID)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		url := fmt.Sprintf("%s/user/confirmation/%s", config.PublicBaseURL(), emailToken)
		_ = mailer.SendVerification(user.Name, user.Email, url)

		respond.Success(c, http.StatusCreated, gin.H{"user": user})
	}
}

// GET /user/confirmation/:token
func ConfirmEmailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ParseEmailToken(c.Param("token"))
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}
		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("active", true).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}
		respond.Success(c, http.StatusOK, nil)
	}
}

// POST /user/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		var user models.User
		if err := db.First(&user, "email = ?", strings.ToLower(in.Email)).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("Unable to login"))
			return
		}
		if !auth.CheckPassword(user.Password, in.Password) {
			respond.Failure(c, http.StatusBadRequest, errors.New("Incorrect Credentials"))
			return
		}
		if !user.Active {
			respond.Failure(c, http.StatusBadRequest, errors.New("Please verify your email!"))
			return
		}

		token, err := auth.IssueToken(auth.SubjectUser, user.ID)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		if err := db.Create(&models.UserToken{UserID: user.ID, Token: token}).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		respond.Success(c, http.StatusCreated, gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// POST /user/logout
func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		token := c.GetString(middleware.CtxToken)

		if err := db.Where("user_id = ? AND token = ?", user.ID, token).
			Delete(&models.UserToken{}).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// POST /user/logoutAll
func LogoutAllHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := db.Where("user_id = ?", user.ID).
			Delete(&models.UserToken{}).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, gin.H{"message": "Logged out from all devices"})
	}
}

// GET /user/me
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var full models.User
		if err := db.Preload("Cart").Preload("Wishlist").
			Preload("Orders.Items").Preload("Payments").Preload("Addresses").
			First(&full, "id = ?", user.ID).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, full)
	}
}

// POST /user/me/addAddress
func AddAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var in AddAddressInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}
		addr := models.Address{
			UserID:   user.ID,
			Location: in.Address,
			Type:     in.Type,
		}
		if err := db.Create(&addr).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}
		respond.Success(c, http.StatusCreated, addr)
	}
}

// PATCH /user/address
// Removes the address matching the supplied location.
func RemoveAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var in struct {
			Location string `json:"location" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		res := db.Where("user_id = ? AND location = ?", user.ID, in.Location).
			Delete(&models.Address{})
		if res.Error != nil {
			respond.Failure(c, http.StatusInternalServerError, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respond.Failure(c, http.StatusBadRequest, errors.New("Unable to update!"))
			return
		}
		respond.Success(c, http.StatusOK, nil)
	}
}

// PATCH /user/me/update
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var in UpdateUserInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Phone != nil {
			updates["phone"] = *in.Phone
		}
		if in.Age != nil {
			if *in.Age < 14 {
				respond.Failure(c, http.StatusBadRequest, errors.New("You are too young!"))
				return
			}
			updates["age"] = *in.Age
		}
		if len(updates) == 0 {
			respond.Failure(c, http.StatusBadRequest, errors.New("nothing to update"))
			return
		}
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(updates).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, err)
			return
		}

		var updated models.User
		if err := db.First(&updated, "id = ?", user.ID).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, gin.H{"user": updated})
	}
}

// DELETE /user/delete
// Deactivates rather than destroys; orders and payments survive.
func DeactivateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("active", false).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusNoContent, gin.H{"status": "success", "data": nil})
	}
}

// GET /user/paymentHistory
func PaymentHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var payments []models.Payment
		if err := db.Where("user_id = ?", user.ID).Order("date").
			Find(&payments).Error; err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("Could not retreive payments!"))
			return
		}
		respond.Success(c, http.StatusOK, payments)
	}
}

// GET /user/Orders view helpers live on the user aggregate itself.

// PendingOrders returns the buyer's not-yet-delivered orders.
func PendingOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Items").
		Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
		Order("created_at").Find(&orders).Error
	return orders, err
}

// OrderHistory returns the buyer's delivered orders.
func OrderHistory(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Items").
		Where("user_id = ? AND status = ?", userID, models.OrderStatusDelivered).
		Order("created_at").Find(&orders).Error
	return orders, err
}

// GET /user/Orders
func PendingOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		orders, err := PendingOrders(db, user.ID)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, orders)
	}
}

// GET /user/OrderHistory
func OrderHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		orders, err := OrderHistory(db, user.ID)
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		respond.Success(c, http.StatusOK, orders)
	}
}
