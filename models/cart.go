package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Cart is the single open cart of a user. Carts are created lazily on first
// access and survive until cleared or checked out by a system outside this
// service.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// AfterFind menjaga items selalu array di JSON, bukan null.
func (c *Cart) AfterFind(tx *gorm.DB) error {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	return nil
}

type CartItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CartID     uint     `gorm:"not null" json:"cart_id"`
	Cart       Cart     `gorm:"foreignKey:CartID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Quantity   int      `gorm:"not null" json:"quantity"`

	// Chosen customizations for this line, e.g. {"notes": "Extra spicy"}.
	Customizations     map[string]string `gorm:"-" json:"customizations"`
	CustomizationsJSON string            `gorm:"column:customizations;type:text" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ci *CartItem) BeforeSave(tx *gorm.DB) error {
	if ci.Customizations == nil {
		ci.CustomizationsJSON = "{}"
		return nil
	}
	raw, err := json.Marshal(ci.Customizations)
	if err != nil {
		return err
	}
	ci.CustomizationsJSON = string(raw)
	return nil
}

func (ci *CartItem) AfterFind(tx *gorm.DB) error {
	if ci.CustomizationsJSON == "" {
		ci.Customizations = map[string]string{}
		return nil
	}
	return json.Unmarshal([]byte(ci.CustomizationsJSON), &ci.Customizations)
}

type CartItemCreate struct {
	MenuItemID     uint              `json:"menu_item_id" binding:"required"`
	Quantity       int               `json:"quantity" binding:"required,min=1"`
	Customizations map[string]string `json:"customizations"`
}

// CartItemUpdate patches a cart line. Quantity 0 removes the line.
type CartItemUpdate struct {
	Quantity       *int              `json:"quantity"`
	Customizations map[string]string `json:"customizations"`
}
