package router

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rasamenu/menu-app/controllers"
	"github.com/rasamenu/menu-app/middlewares"
	"github.com/rasamenu/menu-app/models"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	workDir, _ := os.Getwd()
	r.Static("/uploads", filepath.Join(workDir, "public", "uploads"))

	// Middleware harus terdaftar sebelum route, gin menyalin chain
	// per-route saat registrasi.
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuItemCtrl := controllers.NewMenuItemController(db)
	allergenCtrl := controllers.NewAllergenController(db)
	ratingCtrl := controllers.NewRatingController(db)
	cartCtrl := controllers.NewCartController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Katalog menu, tanpa auth
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)

	r.GET("/menu-items", menuItemCtrl.GetAllMenuItems)
	r.GET("/menu-items/by-category", menuItemCtrl.GetMenuItemsByCategory)
	r.GET("/menu-items/:item_id", menuItemCtrl.GetMenuItemByID)
	r.GET("/menu-items/:item_id/ratings", ratingCtrl.GetMenuItemRatings)

	r.GET("/allergens", allergenCtrl.GetAllAllergens)
	r.GET("/allergens/:allergen_id", allergenCtrl.GetAllergenByID)

	r.GET("/feedback/:category", ratingCtrl.GetFeedbackByCategory)

	// Feed real-time untuk menu board
	r.GET("/ws/menu", controllers.MenuFeedHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	user := r.Group("/")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", userCtrl.GetProfile)
		user.POST("/logout", userCtrl.Logout)

		// CART
		user.GET("/cart", cartCtrl.GetCart)
		user.POST("/cart/items", cartCtrl.AddCartItem)
		user.PATCH("/cart/items/:item_id", cartCtrl.UpdateCartItem)
		user.DELETE("/cart/items/:item_id", cartCtrl.RemoveCartItem)
		user.DELETE("/cart", cartCtrl.ClearCart)

		// RATINGS & FEEDBACK
		user.POST("/ratings/menu-items/:item_id", ratingCtrl.RateMenuItem)
		user.GET("/ratings/menu-items/:item_id/user", ratingCtrl.GetUserMenuItemRating)
		user.DELETE("/ratings/menu-items/:item_id", ratingCtrl.DeleteMenuItemRating)
		user.POST("/feedback", ratingCtrl.CreateFeedback)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	admin.Use(middlewares.RequireRole(models.RoleAdmin, models.RoleStaff))
	{
		// MENU CATEGORIES (staff/admin only)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		// MENU ITEMS (staff/admin)
		admin.POST("/menu-items", menuItemCtrl.CreateMenuItem)
		admin.PATCH("/menu-items/:item_id", menuItemCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:item_id", menuItemCtrl.DeleteMenuItem)
		admin.POST("/menu-items/:item_id/image", menuItemCtrl.UploadMenuItemImage)
	}

	return r
}
