package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/repository"
	"github.com/pageza/recipebook/backend/internal/service"
)

// RecipeData is the shape of one entry in a seed file
type RecipeData struct {
	Name         string   `json:"recipeName"`
	Category     string   `json:"category"`
	Servings     int      `json:"servings"`
	Instructions string   `json:"instructions"`
	Ingredients  []string `json:"ingredients"`
}

var defaultRecipes = []RecipeData{
	{
		Name:         "Baked Salmon",
		Category:     "Fish",
		Servings:     1,
		Instructions: "Season the salmon with pepper and lemon, then bake in the oven for 20 minutes.",
		Ingredients:  []string{"Salmon", "Pepper", "Lemon"},
	},
	{
		Name:         "Fish Curry",
		Category:     "Fish",
		Servings:     3,
		Instructions: "Fry the curry paste, add coconut milk and simmer the cod until flaky.",
		Ingredients:  []string{"Cod", "Coconut milk", "Curry paste"},
	},
	{
		Name:         "Banana Bread",
		Category:     "Desert",
		Servings:     4,
		Instructions: "Mash the bananas, mix with flour and sugar, bake in the oven for an hour.",
		Ingredients:  []string{"Banana", "Flour", "Sugar"},
	},
	{
		Name:         "Greek Salad",
		Category:     "Vegetarian",
		Servings:     2,
		Instructions: "Chop the vegetables, crumble the feta on top and dress with olive oil.",
		Ingredients:  []string{"Tomato", "Cucumber", "Feta", "Olive oil"},
	},
	{
		Name:         "Tomato Soup",
		Category:     "Soup",
		Servings:     4,
		Instructions: "Roast the tomatoes and garlic, blend with stock and season to taste.",
		Ingredients:  []string{"Tomato", "Garlic", "Vegetable stock"},
	},
}

func (d RecipeData) toModel() *model.Recipe {
	r := &model.Recipe{
		RecipeName:   d.Name,
		Category:     d.Category,
		Servings:     d.Servings,
		Instructions: d.Instructions,
	}
	for _, name := range d.Ingredients {
		r.Ingredients = append(r.Ingredients, model.Ingredient{Name: name})
	}
	return r
}

func loadRecipes(path string) ([]RecipeData, error) {
	if path == "" {
		return defaultRecipes, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var recipes []RecipeData
	if err := json.Unmarshal(content, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return recipes, nil
}

// seed adds every recipe that is not stored yet and returns how many were created
func seed(ctx context.Context, svc service.IRecipeService, recipes []RecipeData, log *zap.Logger) (int, error) {
	created := 0
	for _, data := range recipes {
		recipe, err := svc.AddRecipe(ctx, data.toModel())
		var exists *service.AlreadyExistsError
		if errors.As(err, &exists) {
			log.Info("recipe already seeded", zap.String("recipeName", data.Name))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to seed %q: %w", data.Name, err)
		}
		log.Info("created recipe", zap.String("recipeName", recipe.RecipeName), zap.Stringer("recipeId", recipe.RecipeID))
		created++
	}
	return created, nil
}

func main() {
	file := flag.String("file", "", "JSON file of recipes to seed (defaults to the built-in samples)")
	flag.Parse()

	log, err := logger.New(false, "info")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	recipes, err := loadRecipes(*file)
	if err != nil {
		log.Fatal("failed to load recipes", zap.Error(err))
	}

	svc := service.NewRecipeService(repository.NewRecipeRepository(db), log)
	created, err := seed(context.Background(), svc, recipes, log)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("seeding finished", zap.Int("created", created), zap.Int("total", len(recipes)))
}
