package models

import "time"

// Role is fixed at sign-up; no flow mutates it afterwards.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleShopOwner Role = "shop_owner"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleShopOwner
}

// User is a platform account, 1:1 with an authentication identity.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	PhotoURL     string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
