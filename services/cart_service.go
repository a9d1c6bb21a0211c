package services

import (
	"errors"

	"github.com/rasamenu/menu-app/models"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrCartItemNotFound    = errors.New("cart item not found")
)

// CartService manages the single open cart each user has.
type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// GetOrCreateCart returns the user's cart, creating an empty one on first use.
func (cs *CartService) GetOrCreateCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := cs.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := cs.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return cs.loadCart(cart.ID)
}

// AddItem puts a menu item into the cart. Adding an item that is already in
// the cart merges the quantities and replaces the line's customizations.
func (cs *CartService) AddItem(userID uint, in models.CartItemCreate) (*models.Cart, error) {
	var menuItem models.MenuItem
	if err := cs.DB.First(&menuItem, in.MenuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if !menuItem.IsAvailable || !menuItem.IsActive {
		return nil, ErrMenuItemUnavailable
	}

	cart, err := cs.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	var line models.CartItem
	err = cs.DB.Where("cart_id = ? AND menu_item_id = ?", cart.ID, in.MenuItemID).First(&line).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{
			CartID:         cart.ID,
			MenuItemID:     in.MenuItemID,
			Quantity:       in.Quantity,
			Customizations: in.Customizations,
		}
		if err := cs.DB.Create(&line).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		line.Quantity += in.Quantity
		if in.Customizations != nil {
			line.Customizations = in.Customizations
		}
		if err := cs.DB.Save(&line).Error; err != nil {
			return nil, err
		}
	}

	return cs.loadCart(cart.ID)
}

// UpdateItem patches a cart line. Setting quantity to zero removes the line.
func (cs *CartService) UpdateItem(userID, cartItemID uint, in models.CartItemUpdate) (*models.Cart, error) {
	cart, line, err := cs.findLine(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	if in.Quantity != nil && *in.Quantity <= 0 {
		if err := cs.DB.Delete(line).Error; err != nil {
			return nil, err
		}
		return cs.loadCart(cart.ID)
	}

	if in.Quantity != nil {
		line.Quantity = *in.Quantity
	}
	if in.Customizations != nil {
		line.Customizations = in.Customizations
	}
	if err := cs.DB.Save(line).Error; err != nil {
		return nil, err
	}
	return cs.loadCart(cart.ID)
}

// RemoveItem deletes a cart line.
func (cs *CartService) RemoveItem(userID, cartItemID uint) (*models.Cart, error) {
	cart, line, err := cs.findLine(userID, cartItemID)
	if err != nil {
		return nil, err
	}
	if err := cs.DB.Delete(line).Error; err != nil {
		return nil, err
	}
	return cs.loadCart(cart.ID)
}

// ClearCart removes every line from the user's cart.
func (cs *CartService) ClearCart(userID uint) (*models.Cart, error) {
	cart, err := cs.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	if err := cs.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return cs.loadCart(cart.ID)
}

// CalculateTotal sums price x quantity over the cart at current menu prices.
func (cs *CartService) CalculateTotal(userID uint) (float64, error) {
	cart, err := cs.GetOrCreateCart(userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, line := range cart.Items {
		total += line.MenuItem.Price * float64(line.Quantity)
	}
	return total, nil
}

func (cs *CartService) loadCart(cartID uint) (*models.Cart, error) {
	var cart models.Cart
	err := cs.DB.
		Preload("Items.MenuItem").
		Preload("Items.MenuItem.CategoryRef").
		Preload("Items.MenuItem.Allergens", func(db *gorm.DB) *gorm.DB {
			return db.Order("allergens.id")
		}).
		First(&cart, cartID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cs *CartService) findLine(userID, cartItemID uint) (*models.Cart, *models.CartItem, error) {
	cart, err := cs.GetOrCreateCart(userID)
	if err != nil {
		return nil, nil, err
	}
	var line models.CartItem
	err = cs.DB.Where("id = ? AND cart_id = ?", cartItemID, cart.ID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return cart, &line, nil
}
