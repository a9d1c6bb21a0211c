package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rasamenu/menu-app/models"
)

func setupRatingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:ratingsvc?mode=memory&cache=shared"), &gorm.Config{})
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

func seedRatingFixtures(t *testing.T, db *gorm.DB) (models.User, models.User, models.MenuItem) {
	t.Helper()
	alice := models.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: models.RoleCustomer}
	bob := models.User{Name: "Bob", Email: "bob@example.com", Password: "x", Role: models.RoleCustomer}
	if err := db.Create(&alice).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := db.Create(&bob).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	category := models.Category{Name: "Mains", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := models.MenuItem{
		Name: "Gado Gado", Price: 20000, CategoryID: category.ID,
		IsActive: true, IsAvailable: true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return alice, bob, item
}

func TestRateMenuItemUpsert(t *testing.T) {
	db := setupRatingTestDB(t)
	alice, _, item := seedRatingFixtures(t, db)
	service := NewRatingService(db)

	first, err := service.RateMenuItem(alice.ID, item.ID, models.RatingCreate{Rating: 4, Comment: "Great dish!"})
	assert.NoError(t, err)
	assert.Equal(t, 4, first.Rating)

	// Rating kedua oleh user yang sama menimpa yang pertama.
	second, err := service.RateMenuItem(alice.ID, item.ID, models.RatingCreate{Rating: 5, Comment: "Updated rating"})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "Updated rating", second.Comment)

	ratings, err := service.ListRatings(item.ID)
	assert.NoError(t, err)
	assert.Len(t, ratings, 1)
}

func TestRatingAggregatesRefresh(t *testing.T) {
	db := setupRatingTestDB(t)
	alice, bob, item := seedRatingFixtures(t, db)
	service := NewRatingService(db)

	_, err := service.RateMenuItem(alice.ID, item.ID, models.RatingCreate{Rating: 4})
	assert.NoError(t, err)
	_, err = service.RateMenuItem(bob.ID, item.ID, models.RatingCreate{Rating: 2})
	assert.NoError(t, err)

	var refreshed models.MenuItem
	assert.NoError(t, db.First(&refreshed, item.ID).Error)
	assert.Equal(t, 3.0, refreshed.AverageRating)
	assert.Equal(t, 2, refreshed.RatingCount)

	assert.NoError(t, service.DeleteRating(bob.ID, item.ID))
	assert.NoError(t, db.First(&refreshed, item.ID).Error)
	assert.Equal(t, 4.0, refreshed.AverageRating)
	assert.Equal(t, 1, refreshed.RatingCount)
}

func TestRateUnknownMenuItem(t *testing.T) {
	db := setupRatingTestDB(t)
	alice, _, _ := seedRatingFixtures(t, db)
	service := NewRatingService(db)

	_, err := service.RateMenuItem(alice.ID, 999, models.RatingCreate{Rating: 4})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestUserRating(t *testing.T) {
	db := setupRatingTestDB(t)
	alice, bob, item := seedRatingFixtures(t, db)
	service := NewRatingService(db)

	_, err := service.RateMenuItem(alice.ID, item.ID, models.RatingCreate{Rating: 4, Comment: "User's rating"})
	assert.NoError(t, err)

	rating, err := service.UserRating(alice.ID, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 4, rating.Rating)

	_, err = service.UserRating(bob.ID, item.ID)
	assert.ErrorIs(t, err, ErrRatingNotFound)
}

func TestDeleteRatingNotFound(t *testing.T) {
	db := setupRatingTestDB(t)
	alice, _, item := seedRatingFixtures(t, db)
	service := NewRatingService(db)

	assert.ErrorIs(t, service.DeleteRating(alice.ID, item.ID), ErrRatingNotFound)
}

func TestRestaurantFeedback(t *testing.T) {
	db := setupRatingTestDB(t)
	alice, _, _ := seedRatingFixtures(t, db)
	service := NewRatingService(db)

	created, err := service.CreateFeedback(alice.ID, models.FeedbackCreate{
		Category: models.FeedbackService, Rating: 5, Comment: "Great service!",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.FeedbackService, created.Category)

	listed, err := service.ListFeedback(models.FeedbackService)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = service.CreateFeedback(alice.ID, models.FeedbackCreate{Category: "INVALID", Rating: 5})
	assert.ErrorIs(t, err, ErrInvalidFeedbackCategory)

	_, err = service.ListFeedback("INVALID")
	assert.ErrorIs(t, err, ErrInvalidFeedbackCategory)
}
