package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rasamenu/menu-app/models"
	"github.com/rasamenu/menu-app/services"
	"github.com/rasamenu/menu-app/utils"
	"gorm.io/gorm"
)

type RatingController struct {
	Service *services.RatingService
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{Service: services.NewRatingService(db)}
}

// RateMenuItem -> upsert rating user untuk satu menu item
func (rc *RatingController) RateMenuItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	var body models.RatingCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rating, err := rc.Service.RateMenuItem(userID, uint(itemID), body)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rating saved", rating)
}

// GetMenuItemRatings
func (rc *RatingController) GetMenuItemRatings(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	ratings, err := rc.Service.ListRatings(uint(itemID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item ratings", ratings)
}

// GetUserMenuItemRating -> rating milik user yang sedang login
func (rc *RatingController) GetUserMenuItemRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	rating, err := rc.Service.UserRating(userID, uint(itemID))
	if err != nil {
		if errors.Is(err, services.ErrRatingNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User rating", rating)
}

// DeleteMenuItemRating
func (rc *RatingController) DeleteMenuItemRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	if err := rc.Service.DeleteRating(userID, uint(itemID)); err != nil {
		if errors.Is(err, services.ErrRatingNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateFeedback
func (rc *RatingController) CreateFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body models.FeedbackCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	feedback, err := rc.Service.CreateFeedback(userID, body)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFeedbackCategory) {
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Feedback created", feedback)
}

// GetFeedbackByCategory
func (rc *RatingController) GetFeedbackByCategory(c *gin.Context) {
	category := c.Param("category")

	feedback, err := rc.Service.ListFeedback(category)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFeedbackCategory) {
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant feedback", feedback)
}

// currentUserID mengambil user id yang diset auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return 0, false
	}
	userID, ok := v.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return 0, false
	}
	return userID, true
}
