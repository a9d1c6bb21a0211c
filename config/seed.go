package config

import (
	"github.com/rasamenu/menu-app/models"
	"gorm.io/gorm"
)

// Allergen adalah data referensi: di-seed sekali, tidak ada endpoint tulisnya.
var defaultAllergens = []models.Allergen{
	{Name: "Gluten", Description: strPtr("Wheat, barley, rye and derived products")},
	{Name: "Dairy", Description: strPtr("Milk and milk products")},
	{Name: "Eggs", Description: nil},
	{Name: "Peanuts", Description: nil},
	{Name: "Tree Nuts", Description: strPtr("Almonds, cashews, walnuts and similar")},
	{Name: "Soy", Description: nil},
	{Name: "Fish", Description: nil},
	{Name: "Shellfish", Description: strPtr("Crustaceans and molluscs")},
	{Name: "Sesame", Description: nil},
}

// SeedAllergens mengisi tabel allergens jika masih kosong.
func SeedAllergens(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Allergen{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&defaultAllergens).Error
}

func strPtr(s string) *string {
	return &s
}
