package models

import "time"

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// Shop is the store aggregate root: catalog masters, deliveries, the
// demand ledger and running counters all hang off it.
type Shop struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Email       string  `gorm:"unique;not null" json:"email"`
	Password    string  `gorm:"not null" json:"-"`
	Owner       string  `json:"owner"`
	Phone       string  `json:"phone"`
	Rating      float64 `gorm:"default:5" json:"rating"`

	TotalClicks    int `gorm:"default:0" json:"total_clicks"`
	TotalItemsSold int `gorm:"default:0" json:"total_items_sold"`

	ProfitsDaily   float64 `gorm:"default:0" json:"profits_daily"`
	ProfitsMonthly float64 `gorm:"default:0" json:"profits_monthly"`
	ProfitsYearly  float64 `gorm:"default:0" json:"profits_yearly"`

	// TrendingItem is a cached snapshot of the item with the highest
	// demand ever observed; it is never recomputed from the catalog. A
	// zero ItemID means no trending item yet.
	TrendingItem   ItemSnapshot `gorm:"embedded;embeddedPrefix:trending_" json:"trending_item"`
	TrendingDemand int          `gorm:"default:0" json:"trending_demand"`
	MaxDemand      int          `gorm:"default:0" json:"max_demand"`

	Items          []CatalogItem   `gorm:"foreignKey:ShopID" json:"items"`
	Deliveries     []Delivery      `gorm:"foreignKey:ShopID" json:"deliveries"`
	DemandRequests []DemandRequest `gorm:"foreignKey:ShopID" json:"demand_requests"`
	Tokens         []ShopToken     `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE" json:"-"`

	// Plain coordinates; proximity search is handled outside this service.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Landmark  string  `json:"landmark"`

	CreatedAt time.Time `json:"created_at"`
}

// Delivery is the shop-side mirror of a buyer's Order, correlated by
// OrderID and carrying the buyer's contact details for fulfilment.
type Delivery struct {
	OrderID   string         `gorm:"primaryKey" json:"order_id"`
	ShopID    uint           `gorm:"index" json:"shop_id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	UserName  string         `json:"user_name"`
	UserEmail string         `json:"user_email"`
	UserPhone string         `json:"user_phone"`
	Address   string         `json:"address"`
	Status    DeliveryStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Items     []DeliveryItem `gorm:"foreignKey:DeliveryOrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

// DemandRequest is one shop's copy of a broadcast buyer request for an
// item nobody stocks. Every shop holds its own row; removal is local.
type DemandRequest struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ShopID         uint   `gorm:"index" json:"shop_id"`
	ProductName    string `gorm:"index" json:"product_name"`
	Description    string `json:"description"`
	RequesterName  string `json:"requester_name"`
	RequesterPhone string `json:"requester_phone"`
	Quantity       int    `json:"quantity"`
}

type ShopToken struct {
	ID     uint   `gorm:"primaryKey"`
	ShopID uint   `gorm:"index"`
	Token  string `gorm:"index;not null"`
}
