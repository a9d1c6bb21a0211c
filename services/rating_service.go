package services

import (
	"errors"

	"github.com/rasamenu/menu-app/models"
	"gorm.io/gorm"
)

var (
	ErrRatingNotFound          = errors.New("rating not found")
	ErrInvalidFeedbackCategory = errors.New("invalid feedback category")
)

// RatingService stores per-user menu item ratings and keeps the denormalized
// average_rating/rating_count columns on menu items in sync.
type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// RateMenuItem records a rating. A second rating by the same user for the
// same item overwrites the first one.
func (rs *RatingService) RateMenuItem(userID, menuItemID uint, in models.RatingCreate) (*models.MenuItemRating, error) {
	var menuItem models.MenuItem
	if err := rs.DB.First(&menuItem, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}

	var rating models.MenuItemRating
	err := rs.DB.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&rating).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.MenuItemRating{
			MenuItemID: menuItemID,
			UserID:     userID,
			Rating:     in.Rating,
			Comment:    in.Comment,
		}
		if err := rs.DB.Create(&rating).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		rating.Rating = in.Rating
		rating.Comment = in.Comment
		if err := rs.DB.Save(&rating).Error; err != nil {
			return nil, err
		}
	}

	if err := rs.refreshAggregates(menuItemID); err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListRatings returns all ratings for a menu item, newest first.
func (rs *RatingService) ListRatings(menuItemID uint) ([]models.MenuItemRating, error) {
	var ratings []models.MenuItemRating
	err := rs.DB.Where("menu_item_id = ?", menuItemID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// UserRating returns the calling user's rating for a menu item.
func (rs *RatingService) UserRating(userID, menuItemID uint) (*models.MenuItemRating, error) {
	var rating models.MenuItemRating
	err := rs.DB.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteRating removes the user's rating and refreshes the item aggregates.
func (rs *RatingService) DeleteRating(userID, menuItemID uint) error {
	res := rs.DB.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&models.MenuItemRating{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return rs.refreshAggregates(menuItemID)
}

// CreateFeedback stores general restaurant feedback under a known category.
func (rs *RatingService) CreateFeedback(userID uint, in models.FeedbackCreate) (*models.RestaurantFeedback, error) {
	if !models.ValidFeedbackCategory(in.Category) {
		return nil, ErrInvalidFeedbackCategory
	}
	feedback := models.RestaurantFeedback{
		UserID:   userID,
		Category: in.Category,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := rs.DB.Create(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListFeedback returns feedback for one category, newest first.
func (rs *RatingService) ListFeedback(category string) ([]models.RestaurantFeedback, error) {
	if !models.ValidFeedbackCategory(category) {
		return nil, ErrInvalidFeedbackCategory
	}
	var feedback []models.RestaurantFeedback
	err := rs.DB.Where("category = ?", category).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}

func (rs *RatingService) refreshAggregates(menuItemID uint) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	err := rs.DB.Model(&models.MenuItemRating{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("menu_item_id = ?", menuItemID).
		Scan(&stats).Error
	if err != nil {
		return err
	}
	return rs.DB.Model(&models.MenuItem{}).
		Where("id = ?", menuItemID).
		Updates(map[string]interface{}{
			"average_rating": stats.Avg,
			"rating_count":   stats.Count,
		}).Error
}
