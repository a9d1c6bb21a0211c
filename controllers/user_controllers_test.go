package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rasamenu/menu-app/controllers"
	"github.com/rasamenu/menu-app/middlewares"
	"github.com/rasamenu/menu-app/models"
	"github.com/rasamenu/menu-app/utils"
)

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	ctrl := controllers.NewUserController(db)
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)

	auth := router.Group("/", middlewares.AuthMiddleware())
	auth.GET("/profile", ctrl.GetProfile)
	auth.POST("/logout", ctrl.Logout)
	return router
}

func TestRegisterLoginProfile(t *testing.T) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:userctrl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Where("1 = 1").Delete(&models.User{})

	router := setupAuthRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "Admin",
		"email":    "admin@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Password salah
	w = doJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login benar -> token
	w = doJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)

	// Profile dengan token
	req, err := http.NewRequest("GET", "/profile", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := doRequest(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// Logout lalu token ditolak
	req, err = http.NewRequest("POST", "/logout", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 = doRequest(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	req, err = http.NewRequest("GET", "/profile", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 = doRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestProfileWithoutToken(t *testing.T) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:userctrl2?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	router := setupAuthRouter(db)
	req, err := http.NewRequest("GET", "/profile", nil)
	assert.NoError(t, err)
	w := doRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
