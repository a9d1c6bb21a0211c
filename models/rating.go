package models

import "time"

// MenuItemRating holds one rating per (user, menu item); posting again
// overwrites the previous rating instead of adding a second row.
type MenuItemRating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_rating_user_item" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_rating_user_item" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

const (
	FeedbackService     = "SERVICE"
	FeedbackFood        = "FOOD"
	FeedbackAmbience    = "AMBIENCE"
	FeedbackCleanliness = "CLEANLINESS"
	FeedbackOverall     = "OVERALL"
)

// ValidFeedbackCategory reports whether category is one of the known
// restaurant feedback categories.
func ValidFeedbackCategory(category string) bool {
	switch category {
	case FeedbackService, FeedbackFood, FeedbackAmbience, FeedbackCleanliness, FeedbackOverall:
		return true
	}
	return false
}

type RestaurantFeedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Category  string    `gorm:"type:varchar(20);not null" json:"category"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type RatingCreate struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type FeedbackCreate struct {
	Category string `json:"category" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}
