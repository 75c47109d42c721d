package deliveryControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whoisaditya/IWP-Backend/apperr"
	checkoutControllers "github.com/whoisaditya/IWP-Backend/controllers/checkout"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/testutil"
)

func TestMarkDelivered_RoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")
	testutil.AddCartLine(t, db, user, item, 2)

	order, err := checkoutControllers.Checkout(db, user,
		checkoutControllers.CheckoutRequest{Cost: 20, Address: "12 Elm St"})
	require.NoError(t, err)

	// Present in both pending views before the transition.
	var pendingOrders, pendingDeliveries int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("order_id = ? AND status = ?", order.OrderID, models.OrderStatusPending).
		Count(&pendingOrders).Error)
	require.NoError(t, db.Model(&models.Delivery{}).
		Where("order_id = ? AND status = ?", order.OrderID, models.DeliveryStatusPending).
		Count(&pendingDeliveries).Error)
	assert.EqualValues(t, 1, pendingOrders)
	assert.EqualValues(t, 1, pendingDeliveries)

	require.NoError(t, MarkDelivered(db, shop, user.ID, order.OrderID))

	// Present in both history views, absent from both pending views.
	var stored models.Order
	require.NoError(t, db.First(&stored, "order_id = ?", order.OrderID).Error)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)

	var delivery models.Delivery
	require.NoError(t, db.First(&delivery, "order_id = ?", order.OrderID).Error)
	assert.Equal(t, models.DeliveryStatusDelivered, delivery.Status)
}

func TestMarkDelivered_UnknownOrder(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	user := testutil.MakeUser(t, db, "alice")

	err := MarkDelivered(db, shop, user.ID, "no-such-order")
	require.ErrorIs(t, err, apperr.ErrOrderNotFound)
}

func TestMarkDelivered_UnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")

	err := MarkDelivered(db, shop, 9999, "whatever")
	require.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestMarkDelivered_DoesNotRepeat(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")
	testutil.AddCartLine(t, db, user, item, 1)

	order, err := checkoutControllers.Checkout(db, user,
		checkoutControllers.CheckoutRequest{Cost: 10, Address: "12 Elm St"})
	require.NoError(t, err)

	require.NoError(t, MarkDelivered(db, shop, user.ID, order.OrderID))
	err = MarkDelivered(db, shop, user.ID, order.OrderID)
	require.ErrorIs(t, err, apperr.ErrOrderNotFound)
}

func TestMarkDelivered_LeavesOtherPendingOrdersAlone(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.MakeShop(t, db, "greengrocer")
	item := testutil.MakeItem(t, db, shop, "apples", 10, 50)
	user := testutil.MakeUser(t, db, "alice")

	// Two separate checkouts by the same buyer from the same shop.
	testutil.AddCartLine(t, db, user, item, 1)
	first, err := checkoutControllers.Checkout(db, user,
		checkoutControllers.CheckoutRequest{Cost: 10, Address: "12 Elm St"})
	require.NoError(t, err)

	testutil.AddCartLine(t, db, user, item, 2)
	second, err := checkoutControllers.Checkout(db, user,
		checkoutControllers.CheckoutRequest{Cost: 20, Address: "12 Elm St"})
	require.NoError(t, err)

	require.NoError(t, MarkDelivered(db, shop, user.ID, first.OrderID))

	// Only the requested delivery was archived; the second stays pending
	// even though it belongs to the same buyer.
	var secondDelivery models.Delivery
	require.NoError(t, db.First(&secondDelivery, "order_id = ?", second.OrderID).Error)
	assert.Equal(t, models.DeliveryStatusPending, secondDelivery.Status)

	var secondOrder models.Order
	require.NoError(t, db.First(&secondOrder, "order_id = ?", second.OrderID).Error)
	assert.Equal(t, models.OrderStatusPending, secondOrder.Status)
}

func TestMarkDelivered_WrongShop(t *testing.T) {
	db := testutil.NewDB(t)
	shopA := testutil.MakeShop(t, db, "shop-a")
	shopB := testutil.MakeShop(t, db, "shop-b")
	item := testutil.MakeItem(t, db, shopA, "apples", 10, 5)
	user := testutil.MakeUser(t, db, "alice")
	testutil.AddCartLine(t, db, user, item, 1)

	order, err := checkoutControllers.Checkout(db, user,
		checkoutControllers.CheckoutRequest{Cost: 10, Address: "12 Elm St"})
	require.NoError(t, err)

	// A different shop cannot complete the order, and the buyer-side flip
	// rolls back with it.
	err = MarkDelivered(db, shopB, user.ID, order.OrderID)
	require.ErrorIs(t, err, apperr.ErrOrderNotFound)

	var stored models.Order
	require.NoError(t, db.First(&stored, "order_id = ?", order.OrderID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}
