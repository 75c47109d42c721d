package discoveryControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkoutControllers "github.com/whoisaditya/IWP-Backend/controllers/checkout"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/testutil"
)

func TestTrending_ReflectsCheckoutDemand(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	shopA := testutil.MakeShop(t, db, "shop-a")
	shopB := testutil.MakeShop(t, db, "shop-b")
	apples := testutil.MakeItem(t, db, shopA, "apples", 10, 50)
	testutil.MakeItem(t, db, shopB, "bananas", 4, 50)

	// Shop A earns a trending item; shop B never sells anything.
	user := testutil.MakeUser(t, db, "alice")
	testutil.AddCartLine(t, db, user, apples, 2)
	_, err := checkoutControllers.Checkout(db, user,
		checkoutControllers.CheckoutRequest{Cost: 20, Address: "12 Elm St"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/trending", TrendingHandler(db, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/trending", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Length   int             `json:"length"`
			Trending []TrendingEntry `json:"trending"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	require.Equal(t, 1, body.Data.Length)
	assert.Equal(t, shopA.ID, body.Data.Trending[0].ShopID)
	assert.Equal(t, apples.ID, body.Data.Trending[0].Item.ItemID)
	assert.Equal(t, 1, body.Data.Trending[0].Demand)
}

func TestShopProfile_CountsClicks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")

	r := gin.New()
	r.GET("/shop/:shopID", ShopProfileHandler(db))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/shop/1", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	testutil.ReloadShop(t, db, shop)
	assert.Equal(t, 3, shop.TotalClicks)
}

func TestShopProfile_UnknownShop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	r := gin.New()
	r.GET("/shop/:shopID", ShopProfileHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shop/404", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failure", body["status"])
}

func TestSearchItems_FiltersByName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	testutil.MakeItem(t, db, shop, "Green Apples", 10, 5)
	testutil.MakeItem(t, db, shop, "Red Apples", 11, 5)
	testutil.MakeItem(t, db, shop, "Bananas", 4, 5)

	r := gin.New()
	r.GET("/searchItem/:id", SearchItemsHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/searchItem/1?search=apple", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Length int                  `json:"length"`
			Items  []models.CatalogItem `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Length)
}
