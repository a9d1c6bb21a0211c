package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"type:varchar(255);not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID  uint     `gorm:"not null" json:"category_id"`
	CategoryRef Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	// CategoryName is a denormalized copy of the category name, filled from the
	// preloaded relation after load. Never written by clients.
	CategoryName string `gorm:"-" json:"category"`

	IsActive     bool `gorm:"not null;default:true" json:"is_active"`
	IsAvailable  bool `gorm:"not null;default:true" json:"is_available"`
	IsVegetarian bool `gorm:"not null;default:false" json:"is_vegetarian"`
	IsVegan      bool `gorm:"not null;default:false" json:"is_vegan"`
	IsGlutenFree bool `gorm:"not null;default:false" json:"is_gluten_free"`

	SpiceLevel      int `gorm:"not null;default:0" json:"spice_level"`
	PreparationTime int `gorm:"not null;default:0" json:"preparation_time"`

	// Recomputed from menu_item_ratings after every rating write.
	AverageRating float64 `gorm:"type:decimal(3,2);not null;default:0" json:"average_rating"`
	RatingCount   int     `gorm:"not null;default:0" json:"rating_count"`

	Allergens []Allergen `gorm:"many2many:menu_item_allergens;" json:"allergens"`

	// Customizations maps an option name to its allowed values, e.g.
	// {"size": ["small", "large"]}. Persisted as a JSON text column.
	Customizations     map[string][]string `gorm:"-" json:"customizations"`
	CustomizationsJSON string              `gorm:"column:customizations;type:text" json:"-"`

	ImageUrl  *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (m *MenuItem) BeforeSave(tx *gorm.DB) error {
	if m.Customizations == nil {
		m.CustomizationsJSON = "{}"
		return nil
	}
	raw, err := json.Marshal(m.Customizations)
	if err != nil {
		return err
	}
	m.CustomizationsJSON = string(raw)
	return nil
}

func (m *MenuItem) AfterFind(tx *gorm.DB) error {
	if m.CategoryRef.ID != 0 {
		m.CategoryName = m.CategoryRef.Name
	}
	if m.Allergens == nil {
		m.Allergens = []Allergen{}
	}
	if m.CustomizationsJSON == "" {
		m.Customizations = map[string][]string{}
		return nil
	}
	return json.Unmarshal([]byte(m.CustomizationsJSON), &m.Customizations)
}
