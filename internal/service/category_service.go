package service

import (
	"context"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// CategoryService provides helpers around tracker categories.
type CategoryService struct {
	store repository.DataStore
}

func NewCategoryService(store repository.DataStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) FindOrCreate(ctx context.Context, title string) (model.Category, error) {
	return s.store.FindOrCreateCategory(ctx, title)
}
