package cartControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whoisaditya/IWP-Backend/apperr"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/testutil"
)

func TestAddToCart_CopiesSnapshotAndPinsShop(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")

	require.NoError(t, AddToCart(db, user, item.ID, 3))

	testutil.ReloadUser(t, db, user)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, item.ID, user.Cart[0].ItemID)
	assert.Equal(t, 3, user.Cart[0].Quantity)
	assert.Equal(t, "apples", user.Cart[0].Name)
	require.NotNil(t, user.ShopInCart)
	assert.Equal(t, shop.ID, *user.ShopInCart)

	// The catalog master is untouched until checkout.
	testutil.ReloadItem(t, db, item)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 0, item.Demand)
}

func TestAddToCart_RejectsSecondShop(t *testing.T) {
	db := testutil.NewDB(t)
	shopA := testutil.MakeShop(t, db, "shop-a")
	shopB := testutil.MakeShop(t, db, "shop-b")
	itemA := testutil.MakeItem(t, db, shopA, "apples", 10, 5)
	itemB := testutil.MakeItem(t, db, shopB, "bananas", 4, 5)
	user := testutil.MakeUser(t, db, "alice")

	require.NoError(t, AddToCart(db, user, itemA.ID, 1))
	err := AddToCart(db, user, itemB.ID, 1)
	require.ErrorIs(t, err, apperr.ErrCrossShopCart)

	// Cart unchanged.
	testutil.ReloadUser(t, db, user)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, itemA.ID, user.Cart[0].ItemID)
	assert.Equal(t, shopA.ID, *user.ShopInCart)
}

func TestAddToCart_OutOfStock(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 2)
	user := testutil.MakeUser(t, db, "bob")

	err := AddToCart(db, user, item.ID, 3)
	require.ErrorIs(t, err, apperr.ErrOutOfStock)

	testutil.ReloadUser(t, db, user)
	assert.Empty(t, user.Cart)
	assert.Nil(t, user.ShopInCart)
}

func TestAddToCart_MergesAndClampsToStock(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")

	require.NoError(t, AddToCart(db, user, item.ID, 3))
	require.NoError(t, AddToCart(db, user, item.ID, 4))

	testutil.ReloadUser(t, db, user)
	require.Len(t, user.Cart, 1)
	// 3+4 exceeds the 5 in stock, so the merged line is clamped.
	assert.Equal(t, 5, user.Cart[0].Quantity)
}

func TestAddToCart_UnknownItem(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.MakeUser(t, db, "alice")

	err := AddToCart(db, user, 9999, 1)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIncreaseQuantity_ClampsToHeadroom(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")
	testutil.AddCartLine(t, db, user, item, 3)

	// Asking for +10 only gets the 2 remaining.
	require.NoError(t, IncreaseQuantity(db, user, item.ID, 10))

	testutil.ReloadUser(t, db, user)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 5, user.Cart[0].Quantity)
}

func TestIncreaseQuantity_RemovesLineAndClearsShop(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")
	testutil.AddCartLine(t, db, user, item, 2)

	require.NoError(t, IncreaseQuantity(db, user, item.ID, -2))

	testutil.ReloadUser(t, db, user)
	assert.Empty(t, user.Cart)
	assert.Nil(t, user.ShopInCart)
}

func TestIncreaseQuantity_LineMissing(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.MakeUser(t, db, "alice")

	err := IncreaseQuantity(db, user, 42, 1)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAddToWishlist_SkipsStockReservation(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")

	require.NoError(t, AddToWishlist(db, user, item.ID))

	var wishlist []models.WishlistItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&wishlist).Error)
	require.Len(t, wishlist, 1)
	assert.Equal(t, item.ID, wishlist[0].ItemID)

	// No reservation was made.
	testutil.ReloadItem(t, db, item)
	assert.Equal(t, 5, item.Quantity)
}

func TestAddToWishlist_RejectsOutOfStock(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 0)
	user := testutil.MakeUser(t, db, "alice")

	err := AddToWishlist(db, user, item.ID)
	require.ErrorIs(t, err, apperr.ErrOutOfStock)
}
