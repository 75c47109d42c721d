package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/auth"
	"github.com/whoisaditya/IWP-Backend/models"
)

const (
	CtxUser  = "current_user"
	CtxShop  = "current_shop"
	CtxToken = "bearer_token"
)

func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

func unauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status": "failure",
		"error":  "Please Authenticate",
	})
	c.Abort()
}

// UserAuth verifies the bearer token and loads the buyer aggregate. The
// token must still be present in the user's token list; logout revokes it.
func UserAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			unauthenticated(c)
			return
		}
		userID, err := auth.ParseToken(tokenString, auth.SubjectUser)
		if err != nil {
			unauthenticated(c)
			return
		}

		var user models.User
		if err := db.Preload("Cart").Preload("Tokens").
			First(&user, "id = ?", userID).Error; err != nil {
			unauthenticated(c)
			return
		}
		found := false
		for _, t := range user.Tokens {
			if t.Token == tokenString {
				found = true
				break
			}
		}
		if !found {
			unauthenticated(c)
			return
		}

		c.Set(CtxUser, &user)
		c.Set(CtxToken, tokenString)
		c.Next()
	}
}

// CurrentUser returns the buyer loaded by UserAuth.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	return v.(*models.User)
}
