package models

// Request payload shapes for the menu management API. Read shapes live on the
// models themselves; these are the create/update bodies clients may send.
// Server-assigned fields (id, timestamps, denormalized category name, rating
// aggregates) have no counterpart here so a client cannot submit them. Update
// bodies are decoded strictly (utils.StrictBindJSON), so an "id" key in an
// update payload is a hard error rather than silently ignored.

type CategoryCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

// CategoryUpdate carries the same fields as CategoryCreate. The category id is
// taken from the URL path, never from the body.
type CategoryUpdate struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type MenuItemCreate struct {
	Name            string              `json:"name" binding:"required"`
	Description     string              `json:"description"`
	Price           float64             `json:"price" binding:"required"`
	CategoryID      uint                `json:"category_id" binding:"required"`
	IsActive        bool                `json:"is_active"`
	IsAvailable     bool                `json:"is_available"`
	IsVegetarian    bool                `json:"is_vegetarian"`
	IsVegan         bool                `json:"is_vegan"`
	IsGlutenFree    bool                `json:"is_gluten_free"`
	SpiceLevel      int                 `json:"spice_level"`
	PreparationTime int                 `json:"preparation_time"`
	Customizations  map[string][]string `json:"customizations"`
	ImageUrl        *string             `json:"image_url"`
	AllergenIDs     []uint              `json:"allergen_ids"`
}

// MenuItemUpdate is MenuItemCreate with every field optional (patch semantics).
// Nil means "leave unchanged".
type MenuItemUpdate struct {
	Name            *string             `json:"name"`
	Description     *string             `json:"description"`
	Price           *float64            `json:"price"`
	CategoryID      *uint               `json:"category_id"`
	IsActive        *bool               `json:"is_active"`
	IsAvailable     *bool               `json:"is_available"`
	IsVegetarian    *bool               `json:"is_vegetarian"`
	IsVegan         *bool               `json:"is_vegan"`
	IsGlutenFree    *bool               `json:"is_gluten_free"`
	SpiceLevel      *int                `json:"spice_level"`
	PreparationTime *int                `json:"preparation_time"`
	Customizations  map[string][]string `json:"customizations"`
	ImageUrl        *string             `json:"image_url"`
	AllergenIDs     []uint              `json:"allergen_ids"`
}

// NewMenuItem builds the persistable model from a create payload. Allergens
// are resolved from AllergenIDs by the controller.
func (in MenuItemCreate) NewMenuItem() MenuItem {
	return MenuItem{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		CategoryID:      in.CategoryID,
		IsActive:        in.IsActive,
		IsAvailable:     in.IsAvailable,
		IsVegetarian:    in.IsVegetarian,
		IsVegan:         in.IsVegan,
		IsGlutenFree:    in.IsGlutenFree,
		SpiceLevel:      in.SpiceLevel,
		PreparationTime: in.PreparationTime,
		Customizations:  in.Customizations,
		ImageUrl:        in.ImageUrl,
	}
}

// ApplyTo copies the set fields of a patch onto an existing menu item.
func (in MenuItemUpdate) ApplyTo(item *MenuItem) {
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.IsVegetarian != nil {
		item.IsVegetarian = *in.IsVegetarian
	}
	if in.IsVegan != nil {
		item.IsVegan = *in.IsVegan
	}
	if in.IsGlutenFree != nil {
		item.IsGlutenFree = *in.IsGlutenFree
	}
	if in.SpiceLevel != nil {
		item.SpiceLevel = *in.SpiceLevel
	}
	if in.PreparationTime != nil {
		item.PreparationTime = *in.PreparationTime
	}
	if in.Customizations != nil {
		item.Customizations = in.Customizations
	}
	if in.ImageUrl != nil {
		item.ImageUrl = in.ImageUrl
	}
}

// ApplyTo copies a category update onto an existing category. An empty name is
// treated as unset to keep the unique name column intact.
func (in CategoryUpdate) ApplyTo(category *Category) {
	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Description != nil {
		category.Description = in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
}
