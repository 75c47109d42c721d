package discoveryControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/apperr"
	"github.com/whoisaditya/IWP-Backend/cache"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

// TrendingEntry pairs a shop with its cached trending snapshot.
type TrendingEntry struct {
	ShopID   uint                `json:"shop_id"`
	ShopName string              `json:"shop_name"`
	Item     models.ItemSnapshot `json:"item"`
	Demand   int                 `json:"demand"`
}

// GET /trending
// Serves the per-shop trending projection, from redis when warm.
func TrendingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var trending []TrendingEntry
		if !cache.GetTrending(ctx, rdb, &trending) {
			var shops []models.Shop
			if err := db.Find(&shops).Error; err != nil {
				respond.Failure(c, http.StatusInternalServerError, err)
				return
			}
			trending = make([]TrendingEntry, 0, len(shops))
			for _, shop := range shops {
				if shop.TrendingItem.ItemID == 0 {
					continue
				}
				trending = append(trending, TrendingEntry{
					ShopID:   shop.ID,
					ShopName: shop.Name,
					Item:     shop.TrendingItem,
					Demand:   shop.TrendingDemand,
				})
			}
			cache.SetTrending(ctx, rdb, trending)
		}

		respond.Success(c, http.StatusOK, gin.H{
			"length":   len(trending),
			"trending": trending,
		})
	}
}

// GET /searchShops?search=
// Matches shop names and item names, case-insensitively.
func SearchShopsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("search"))
		pattern := "%" + strings.ToLower(query) + "%"

		var shops []models.Shop
		if err := db.Where("LOWER(name) LIKE ?", pattern).Find(&shops).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		var withItems []models.Shop
		if err := db.Preload("Items").
			Where("id IN (?)", db.Model(&models.CatalogItem{}).
				Select("shop_id").Where("LOWER(name) LIKE ?", pattern)).
			Find(&withItems).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		respond.Success(c, http.StatusOK, gin.H{
			"shopData": gin.H{
				"length": len(shops),
				"shops":  shops,
			},
			"itemsData": gin.H{
				"length": len(withItems),
				"items":  withItems,
			},
		})
	}
}

// GET /searchItem/:id?search=
// Searches one shop's catalog by item name.
func SearchItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid shop id"))
			return
		}
		pattern := "%" + strings.ToLower(strings.TrimSpace(c.Query("search"))) + "%"

		var count int64
		if err := db.Model(&models.Shop{}).Where("id = ?", shopID).Count(&count).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		if count == 0 {
			respond.Error(c, apperr.ErrNotFound)
			return
		}

		var items []models.CatalogItem
		if err := db.Where("shop_id = ? AND LOWER(name) LIKE ?", shopID, pattern).
			Find(&items).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		respond.Success(c, http.StatusOK, gin.H{
			"length": len(items),
			"items":  items,
		})
	}
}

// GET /shop/:shopID
// Fetches a shop profile and counts the visit.
func ShopProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID, err := strconv.ParseUint(c.Param("shopID"), 10, 64)
		if err != nil {
			respond.Failure(c, http.StatusBadRequest, errors.New("invalid shop id"))
			return
		}

		var shop models.Shop
		if err := db.Preload("Items").First(&shop, "id = ?", shopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Error(c, apperr.ErrNotFound)
				return
			}
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		if err := db.Model(&models.Shop{}).Where("id = ?", shop.ID).
			Update("total_clicks", gorm.Expr("total_clicks + 1")).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}
		shop.TotalClicks++

		respond.Success(c, http.StatusOK, shop)
	}
}
