package service

import "fmt"

// AlreadyExistsError is returned when creating a recipe whose name is taken
type AlreadyExistsError struct {
	RecipeName string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("Recipe already exist with %s", e.RecipeName)
}

// NotFoundError is returned when an id or category lookup matches nothing
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func recipeNotFound(field, value string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Recipe not found with %s : %s", field, value)}
}

func categoryEmpty(category string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("No recipes found under :%s", category)}
}
