package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
)

type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// User is the buyer aggregate root. Loaded with its owned rows, mutated in
// memory and persisted inside one transaction.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Gender   string `gorm:"type:VARCHAR(1)" json:"gender"` // m, f or o
	Age      int    `json:"age"`
	Phone    string `json:"phone"`
	Active   bool   `gorm:"default:false" json:"active"`

	// ShopInCart constrains the cart to a single shop. Nil when the cart
	// is empty.
	ShopInCart *uint `json:"shop_in_cart"`

	Cart      []CartLine     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Wishlist  []WishlistItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist"`
	Orders    []Order        `gorm:"foreignKey:UserID" json:"orders"`
	Payments  []Payment      `gorm:"foreignKey:UserID" json:"payments"`
	Addresses []Address      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	Tokens    []UserToken    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Order is the buyer-side record of a checkout. The shop-side Delivery
// shares the same OrderID; status pending/delivered partitions the
// pending-orders and order-history views.
type Order struct {
	OrderID   string        `gorm:"primaryKey" json:"order_id"`
	UserID    uint          `gorm:"index" json:"user_id"`
	ShopID    uint          `json:"shop_id"`
	ShopName  string        `json:"shop_name"`
	Address   string        `json:"address"`
	TotalCost float64       `json:"total_cost"`
	Status    OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Items     []OrderedItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time     `json:"created_at"`
}

type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"index" json:"-"`
	TotalCost float64   `json:"total_cost"`
	ShopName  string    `json:"shop_name"`
	Date      time.Time `json:"date"`
}

type Address struct {
	ID       uint        `gorm:"primaryKey" json:"-"`
	UserID   uint        `gorm:"index" json:"-"`
	Location string      `json:"location"`
	Type     AddressType `gorm:"type:VARCHAR(10)" json:"type"`
}

type UserToken struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"index"`
	Token  string `gorm:"index;not null"`
}
