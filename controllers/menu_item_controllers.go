package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rasamenu/menu-app/menufeed"
	"github.com/rasamenu/menu-app/models"
	"github.com/rasamenu/menu-app/utils"
	"gorm.io/gorm"
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{DB: db}
}

// allergensByID membuat urutan allergens di response stabil.
func allergensByID(db *gorm.DB) *gorm.DB {
	return db.Order("allergens.id")
}

// GetAllMenuItems
func (mc *MenuItemController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	err := mc.DB.Preload("CategoryRef").Preload("Allergens", allergensByID).Find(&items).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenuItemByID
func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	err := mc.DB.Preload("CategoryRef").Preload("Allergens", allergensByID).First(&item, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// GetMenuItemsByCategory mengembalikan menu items untuk satu kategori.
// Endpoint: GET /menu-items/by-category?category=<category id>
func (mc *MenuItemController) GetMenuItemsByCategory(c *gin.Context) {
	categoryIDStr := c.Query("category")
	if categoryIDStr == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'category' is required"))
		return
	}
	categoryID, err := strconv.Atoi(categoryIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category ID"))
		return
	}

	var items []models.MenuItem
	err = mc.DB.Preload("CategoryRef").Preload("Allergens", allergensByID).
		Where("category_id = ?", categoryID).
		Find(&items).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("List of menu items for category ID: %d", categoryID), items)
}

// CreateMenuItem
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	var body models.MenuItemCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := mc.DB.First(&category, body.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category_id does not reference an existing category"))
		return
	}

	allergens, err := mc.resolveAllergens(body.AllergenIDs)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := body.NewMenuItem()
	item.Allergens = allergens

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	created, err := mc.loadItem(item.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	menufeed.BroadcastMenuItemUpdate(*created)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", created)
}

// UpdateMenuItem menerima partial update; body di-decode strict sehingga
// field server-only seperti "id" ditolak.
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var body models.MenuItemUpdate
	if err := utils.StrictBindJSON(c, &body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if body.CategoryID != nil {
		var category models.Category
		if err := mc.DB.First(&category, *body.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("category_id does not reference an existing category"))
			return
		}
	}

	// Validasi allergen_ids sebelum ada yang ditulis, supaya patch yang
	// ditolak tidak meninggalkan perubahan sebagian.
	var allergens []models.Allergen
	if body.AllergenIDs != nil {
		resolved, err := mc.resolveAllergens(body.AllergenIDs)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		allergens = resolved
	}

	body.ApplyTo(&item)

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		if body.AllergenIDs != nil {
			return tx.Model(&item).Association("Allergens").Replace(allergens)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	updated, err := mc.loadItem(item.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	menufeed.BroadcastMenuItemUpdate(*updated)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", updated)
}

// DeleteMenuItem
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Select("Allergens").Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	menufeed.BroadcastMenuItemDelete(uint(id))
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": id})
}

// UploadMenuItemImage menyimpan satu gambar menu dan menulis image_url.
func (mc *MenuItemController) UploadMenuItemImage(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}

	uploadDir := "public/uploads/menu_images"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error creating upload directory"))
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error saving image"))
		return
	}

	imageUrl := fmt.Sprintf("/uploads/menu_images/%s", filename)
	item.ImageUrl = &imageUrl
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	updated, err := mc.loadItem(item.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	menufeed.BroadcastMenuItemUpdate(*updated)
	utils.RespondJSON(c, http.StatusOK, "Menu item image uploaded", updated)
}

func (mc *MenuItemController) loadItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := mc.DB.Preload("CategoryRef").Preload("Allergens", allergensByID).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// resolveAllergens menukar allergen_ids menjadi objek Allergen, urutan input
// dipertahankan.
func (mc *MenuItemController) resolveAllergens(ids []uint) ([]models.Allergen, error) {
	if len(ids) == 0 {
		return []models.Allergen{}, nil
	}

	var found []models.Allergen
	if err := mc.DB.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Allergen, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	allergens := make([]models.Allergen, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("allergen %d not found", id)
		}
		allergens = append(allergens, a)
	}
	return allergens, nil
}
