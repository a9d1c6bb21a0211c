package models

// Allergen is read-only reference data, seeded at startup and attached to menu
// items by id.
type Allergen struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);unique;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}
