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

type CartController struct {
	Service *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{Service: services.NewCartService(db)}
}

type cartResponse struct {
	*models.Cart
	Total float64 `json:"total"`
}

// GetCart -> cart user beserta totalnya
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := cc.Service.GetOrCreateCart(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	total, err := cc.Service.CalculateTotal(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart detail", cartResponse{Cart: cart, Total: total})
}

// AddCartItem
func (cc *CartController) AddCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body models.CartItemCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.Service.AddItem(userID, body)
	if err != nil {
		cc.respondCartError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", cart)
}

// UpdateCartItem -> quantity 0 menghapus baris
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cartItemID, _ := strconv.Atoi(c.Param("item_id"))

	var body models.CartItemUpdate
	if err := utils.StrictBindJSON(c, &body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.Service.UpdateItem(userID, uint(cartItemID), body)
	if err != nil {
		cc.respondCartError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item updated", cart)
}

// RemoveCartItem
func (cc *CartController) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cartItemID, _ := strconv.Atoi(c.Param("item_id"))

	cart, err := cc.Service.RemoveItem(userID, uint(cartItemID))
	if err != nil {
		cc.respondCartError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item removed", cart)
}

// ClearCart
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := cc.Service.ClearCart(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cart)
}

func (cc *CartController) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrCartItemNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrMenuItemUnavailable):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
