package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/auth"
	"github.com/whoisaditya/IWP-Backend/models"
)

// StoreAuth verifies the bearer token and loads the shop aggregate.
func StoreAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			unauthenticated(c)
			return
		}
		shopID, err := auth.ParseToken(tokenString, auth.SubjectShop)
		if err != nil {
			unauthenticated(c)
			return
		}

		var shop models.Shop
		if err := db.Preload("Tokens").First(&shop, "id = ?", shopID).Error; err != nil {
			unauthenticated(c)
			return
		}
		found := false
		for _, t := range shop.Tokens {
			if t.Token == tokenString {
				found = true
				break
			}
		}
		if !found {
			unauthenticated(c)
			return
		}

		c.Set(CtxShop, &shop)
		c.Set(CtxToken, tokenString)
		c.Next()
	}
}

// CurrentShop returns the shop loaded by StoreAuth.
func CurrentShop(c *gin.Context) *models.Shop {
	v, ok := c.Get(CtxShop)
	if !ok {
		return nil
	}
	return v.(*models.Shop)
}
