package controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rasamenu/menu-app/controllers"
	"github.com/rasamenu/menu-app/models"
	"github.com/rasamenu/menu-app/utils"
)

func setupTestDBForRatings(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:ratingctrl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.MenuItem{},
		&models.MenuItemRating{}, &models.RestaurantFeedback{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Where("1 = 1").Delete(&models.MenuItemRating{})
	db.Where("1 = 1").Delete(&models.RestaurantFeedback{})
	db.Where("1 = 1").Delete(&models.MenuItem{})
	db.Where("1 = 1").Delete(&models.Category{})
	db.Where("1 = 1").Delete(&models.User{})
	return db
}

// withUser meniru AuthMiddleware untuk test.
func withUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", models.RoleCustomer)
		c.Next()
	}
}

func setupRatingRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	ctrl := controllers.NewRatingController(db)
	router.GET("/menu-items/:item_id/ratings", ctrl.GetMenuItemRatings)
	router.GET("/feedback/:category", ctrl.GetFeedbackByCategory)

	user := router.Group("/", withUser(userID))
	user.POST("/ratings/menu-items/:item_id", ctrl.RateMenuItem)
	user.GET("/ratings/menu-items/:item_id/user", ctrl.GetUserMenuItemRating)
	user.DELETE("/ratings/menu-items/:item_id", ctrl.DeleteMenuItemRating)
	user.POST("/feedback", ctrl.CreateFeedback)
	return router
}

func seedRatingUserAndItem(t *testing.T, db *gorm.DB) (models.User, models.MenuItem) {
	t.Helper()
	user := models.User{Name: "Rater", Email: "rater@example.com", Password: "x", Role: models.RoleCustomer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	category := models.Category{Name: "Food", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := models.MenuItem{Name: "Bakso", Price: 18000, CategoryID: category.ID, IsActive: true, IsAvailable: true}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return user, item
}

func TestRatingEndpoints(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRatings(t)
	user, item := seedRatingUserAndItem(t, db)
	router := setupRatingRouter(db, user.ID)

	itemURL := "/ratings/menu-items/" + strconv.Itoa(int(item.ID))

	// Rate
	w := doJSON(t, router, "POST", itemURL, map[string]interface{}{
		"rating":  4,
		"comment": "Great dish!",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(4), resp["data"].(map[string]interface{})["rating"])

	// Rate lagi -> update, bukan baris baru
	w = doJSON(t, router, "POST", itemURL, map[string]interface{}{
		"rating":  5,
		"comment": "Updated rating",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/menu-items/"+strconv.Itoa(int(item.ID))+"/ratings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 1)

	// User rating
	w = doJSON(t, router, "GET", itemURL+"/user", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete -> 204, lalu user rating 404
	w = doJSON(t, router, "DELETE", itemURL, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, "GET", itemURL+"/user", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackEndpoints(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRatings(t)
	user, _ := seedRatingUserAndItem(t, db)
	router := setupRatingRouter(db, user.ID)

	w := doJSON(t, router, "POST", "/feedback", map[string]interface{}{
		"category": "SERVICE",
		"rating":   5,
		"comment":  "Great service!",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/feedback/SERVICE", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 1)

	// Kategori di luar enum -> 422
	w = doJSON(t, router, "POST", "/feedback", map[string]interface{}{
		"category": "INVALID",
		"rating":   5,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
