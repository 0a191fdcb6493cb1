package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a named dish. It owns its ingredients: they are created, replaced
// and deleted together with the recipe.
type Recipe struct {
	RecipeID     uuid.UUID    `gorm:"type:varchar(36);primaryKey" json:"recipeId"`
	RecipeName   string       `gorm:"size:255;not null;index" json:"recipeName" binding:"required"`
	Category     string       `gorm:"size:50;index" json:"category"`
	Servings     int          `json:"servings"`
	Instructions string       `gorm:"type:text" json:"instructions"`
	Ingredients  []Ingredient `gorm:"foreignKey:RecipeID;references:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients" binding:"dive"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Ingredient belongs to exactly one recipe.
type Ingredient struct {
	IngredientID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"ingredientId"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Name         string    `gorm:"size:255;not null" json:"name" binding:"required"`
	// Position keeps the list order of the owning recipe.
	Position int `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate assigns the recipe id on first insert
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.RecipeID == uuid.Nil {
		r.RecipeID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns the ingredient id on first insert
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.IngredientID == uuid.Nil {
		i.IngredientID = uuid.New()
	}
	return nil
}

// IngredientNames returns the ingredient names in list order
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// RecipesFilterRequest narrows a recipe search. Zero values are wildcards.
type RecipesFilterRequest struct {
	Category     string `json:"category,omitempty"`
	Servings     *int   `json:"servings,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	// Ingredients maps an ingredient name to "must include". Only true entries constrain.
	Ingredients map[string]bool `json:"ingredients,omitempty"`
}

// IsEmpty reports whether the request constrains nothing
func (f *RecipesFilterRequest) IsEmpty() bool {
	if f == nil {
		return true
	}
	if f.Category != "" || f.Servings != nil || f.Instructions != "" {
		return false
	}
	for _, include := range f.Ingredients {
		if include {
			return false
		}
	}
	return true
}
