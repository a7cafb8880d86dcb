package models

import "time"

// Favorite marks a shop a customer wants quick access to. Identity is the
// (customer, shop) pair; a unique index enforces it.
type Favorite struct {
	CustomerID string    `bson:"customer_id" json:"customer_id"`
	ShopID     string    `bson:"shop_id" json:"shop_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// FavoriteView is a favorite with its shop document joined in.
type FavoriteView struct {
	CustomerID string `bson:"customer_id" json:"customer_id"`
	ShopID     string `bson:"shop_id" json:"shop_id"`
	Shop       Shop   `bson:"shop" json:"shop"`
}
