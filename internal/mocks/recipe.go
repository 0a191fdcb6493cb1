package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository is a mock implementation of the recipe repository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) FindAll(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ExistsByRecipeName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FilterByCriteria(ctx context.Context, filter *model.RecipesFilterRequest) ([]model.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) AddRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetAllRecipes(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipesByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipeByID(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipeByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeService) SearchRecipesByIngredients(ctx context.Context, filter *model.RecipesFilterRequest) ([]model.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}
