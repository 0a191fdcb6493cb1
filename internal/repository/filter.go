package repository

import (
	"sort"
	"strings"

	"github.com/pageza/recipebook/backend/internal/model"
	"gorm.io/gorm"
)

// Scope is a composable query fragment.
type Scope = func(*gorm.DB) *gorm.DB

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FilterScopes turns a filter request into the scopes that implement it. Every
// set criterion adds one conjunct; unset criteria add nothing, so an empty
// request yields no scopes and matches every recipe.
//
// Instructions match as a case-insensitive substring. Ingredient names match
// case-insensitively and only entries flagged true are applied.
func FilterScopes(f *model.RecipesFilterRequest) []Scope {
	if f == nil {
		return nil
	}

	var scopes []Scope

	if f.Category != "" {
		scopes = append(scopes, CategoryEquals(f.Category))
	}
	if f.Servings != nil {
		scopes = append(scopes, ServingsEquals(*f.Servings))
	}
	if f.Instructions != "" {
		scopes = append(scopes, InstructionsContain(f.Instructions))
	}

	names := make([]string, 0, len(f.Ingredients))
	for name, include := range f.Ingredients {
		if include && strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	// map order is random; keep the generated SQL stable
	sort.Strings(names)
	for _, name := range names {
		scopes = append(scopes, HasIngredient(name))
	}

	return scopes
}

// CategoryEquals matches recipes in exactly this category
func CategoryEquals(category string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.category = ?", category)
	}
}

// ServingsEquals matches recipes with exactly this many servings
func ServingsEquals(servings int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.servings = ?", servings)
	}
}

// InstructionsContain matches recipes whose instructions contain text, ignoring case
func InstructionsContain(text string) Scope {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(recipes.instructions) LIKE ? ESCAPE '\'`, pattern)
	}
}

// HasIngredient matches recipes owning an ingredient with this name, ignoring case
func HasIngredient(name string) Scope {
	name = strings.ToLower(strings.TrimSpace(name))
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"EXISTS (SELECT 1 FROM ingredients WHERE ingredients.recipe_id = recipes.recipe_id AND LOWER(ingredients.name) = ?)",
			name,
		)
	}
}
