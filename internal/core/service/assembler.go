package service

import (
	"context"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
	"todohub/internal/core/model/response"
)

// assemble merges a page of todo rows with their category and tag relations
// using at most two extra lookups, whatever the page size. A dangling
// category reference renders as a null category rather than an error.
func (ts *TodoService) assemble(ctx context.Context, userID uuid.UUID, todos []domain.Todo) ([]response.TodoView, error) {
	views := make([]response.TodoView, 0, len(todos))

	if len(todos) == 0 {
		return views, nil
	}

	todoIDs := make([]uuid.UUID, 0, len(todos))
	categoryIDSet := make(map[uuid.UUID]struct{})

	for _, t := range todos {
		todoIDs = append(todoIDs, t.ID)

		if t.CategoryID != nil {
			categoryIDSet[*t.CategoryID] = struct{}{}
		}
	}

	categoriesByID := make(map[uuid.UUID]domain.Category, len(categoryIDSet))

	if len(categoryIDSet) > 0 {
		categoryIDs := make([]uuid.UUID, 0, len(categoryIDSet))

		for id := range categoryIDSet {
			categoryIDs = append(categoryIDs, id)
		}

		categories, err := ts.repo.CategoriesByIDs(ctx, userID, categoryIDs)

		if err != nil {
			return nil, err
		}

		for _, c := range categories {
			categoriesByID[c.ID] = c
		}
	}

	tagsByTodo, err := ts.repo.TagsByTodoIDs(ctx, todoIDs)

	if err != nil {
		return nil, err
	}

	for _, t := range todos {
		view := response.TodoView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			UserID:      t.UserID,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			Tags:        []response.TagView{},
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}

		if t.CategoryID != nil {
			if category, ok := categoriesByID[*t.CategoryID]; ok {
				cv := response.NewCategoryView(category)
				view.Category = &cv
			}
		}

		for _, tag := range tagsByTodo[t.ID] {
			view.Tags = append(view.Tags, response.NewTagView(tag))
		}

		views = append(views, view)
	}

	return views, nil
}
