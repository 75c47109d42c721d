package models

import "time"

type ItemTag string

const (
	TagFruits     ItemTag = "fruits"
	TagVegetables ItemTag = "vegetables"
	TagMeat       ItemTag = "meat"
	TagDairy      ItemTag = "dairy"
	TagSnacks     ItemTag = "snacks"
	TagDrinks     ItemTag = "drinks"
)

// ValidTag reports whether t is one of the known catalog tags.
func ValidTag(t ItemTag) bool {
	switch t {
	case TagFruits, TagVegetables, TagMeat, TagDairy, TagSnacks, TagDrinks:
		return true
	}
	return false
}

// CatalogItem is the mutable master record, owned by exactly one shop.
// Stock and demand live here and only here; every other appearance of an
// item (cart, wishlist, order, delivery) is a value snapshot.
type CatalogItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID      uint    `gorm:"index;not null" json:"shop_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	UnitCost    float64 `gorm:"not null" json:"unit_cost"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
	Demand      int     `gorm:"not null;default:0" json:"demand"`
	Tag         ItemTag `gorm:"type:VARCHAR(20);not null" json:"tag"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemSnapshot is a value copy of a catalog item taken at the moment it
// enters a cart, wishlist, order or delivery. Mutating a snapshot never
// touches the master.
type ItemSnapshot struct {
	ItemID      uint    `json:"item_id"`
	ShopID      uint    `json:"shop_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitCost    float64 `json:"unit_cost"`
	Tag         ItemTag `json:"tag"`
}

// Snapshot copies the identifying and pricing fields of the master.
func (i CatalogItem) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		ItemID:      i.ID,
		ShopID:      i.ShopID,
		Name:        i.Name,
		Description: i.Description,
		UnitCost:    i.UnitCost,
		Tag:         i.Tag,
	}
}

// CartLine is a buyer-owned snapshot plus the quantity the buyer wants.
type CartLine struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index"`
	ItemSnapshot `gorm:"embedded"`
	Quantity     int       `json:"quantity"`
	AddedAt      time.Time `json:"added_at"`
}

// WishlistItem carries no quantity and reserves no stock; entries can go
// stale when the catalog changes.
type WishlistItem struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index"`
	ItemSnapshot `gorm:"embedded"`
	AddedAt      time.Time `json:"added_at"`
}

// OrderedItem is the buyer-side frozen copy of a checked-out cart line.
type OrderedItem struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      string `gorm:"index"`
	ItemSnapshot `gorm:"embedded"`
	Quantity     int `json:"quantity"`
}

// DeliveryItem is the shop-side frozen copy of the same cart line.
type DeliveryItem struct {
	ID              uint   `gorm:"primaryKey"`
	DeliveryOrderID string `gorm:"index"`
	ItemSnapshot    `gorm:"embedded"`
	Quantity        int `json:"quantity"`
}
