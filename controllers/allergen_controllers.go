package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rasamenu/menu-app/models"
	"github.com/rasamenu/menu-app/utils"
	"gorm.io/gorm"
)

// AllergenController melayani data referensi allergen (read-only, di-seed
// saat startup).
type AllergenController struct {
	DB *gorm.DB
}

func NewAllergenController(db *gorm.DB) *AllergenController {
	return &AllergenController{DB: db}
}

// GetAllAllergens
func (ac *AllergenController) GetAllAllergens(c *gin.Context) {
	var allergens []models.Allergen
	if err := ac.DB.Order("id").Find(&allergens).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of allergens", allergens)
}

// GetAllergenByID
func (ac *AllergenController) GetAllergenByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("allergen_id"))

	var allergen models.Allergen
	if err := ac.DB.First(&allergen, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("allergen not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Allergen detail", allergen)
}
