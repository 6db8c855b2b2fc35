package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"todohub/internal/core/domain"
	"todohub/internal/core/model/response"
	"todohub/internal/core/port"
)

const (
	maxBatchSize = 100

	statsKeyPrefix = "stats:"
	statsCacheTTL  = 15 * time.Second
)

type TodoService struct {
	repo       port.TodoRepository
	categories port.CategoryRepository
	cache      port.CacheRepository
	probe      port.Telemetry
}

func NewTodoService(repo port.TodoRepository, categories port.CategoryRepository, cache port.CacheRepository, probe port.Telemetry) *TodoService {
	return &TodoService{
		repo:       repo,
		categories: categories,
		cache:      cache,
		probe:      probe,
	}
}

func (ts *TodoService) List(ctx context.Context, userID uuid.UUID, filter domain.TodoFilter) (*response.TodoListResponse, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "List", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
	})

	defer span.End()

	page, perPage, err := filter.Normalize()

	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage

	rows, total, err := ts.repo.List(ctx, userID, filter, perPage, offset)

	if err != nil {
		ts.probe.RecordError(ctx, "todo.List", err)
		slog.Error("Error listing todos", "error", err, "user_id", userID)

		return nil, err
	}

	views, err := ts.assemble(ctx, userID, rows)

	if err != nil {
		ts.probe.RecordError(ctx, "todo.List", err)
		return nil, err
	}

	return &response.TodoListResponse{
		Todos:   views,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (ts *TodoService) Get(ctx context.Context, userID, id uuid.UUID) (*response.TodoView, error) {
	todo, err := ts.repo.GetByID(ctx, userID, id)

	if err != nil {
		return nil, err
	}

	views, err := ts.assemble(ctx, userID, []domain.Todo{todo})

	if err != nil {
		return nil, err
	}

	return &views[0], nil
}

func (ts *TodoService) Create(ctx context.Context, userID uuid.UUID, input domain.Todo, tags []string) (*response.TodoView, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "Create", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
	})

	defer span.End()

	if !domain.ValidPriority(input.Priority) {
		return nil, domain.ErrInvalidPriority
	}

	if input.CategoryID != nil {
		if err := ts.checkCategoryOwnership(ctx, userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	todo := domain.Todo{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		UserID:      userID,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	todo, err := ts.repo.Create(ctx, todo, tags)

	if err != nil {
		ts.probe.RecordError(ctx, "todo.Create", err)
		slog.Error("Repository create failed", "error", err, "title", input.Title)

		return nil, err
	}

	ts.probe.RecordBusinessEvent(ctx, "todo.created", "todo", todo.ID.String(), userID)
	ts.invalidateStats(ctx, userID)

	return ts.Get(ctx, userID, todo.ID)
}

func (ts *TodoService) Update(ctx context.Context, userID, id uuid.UUID, update domain.TodoUpdate) (*response.TodoView, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "Update", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
		attribute.String("todo.id", id.String()),
	})

	defer span.End()

	if update.Priority != nil && !domain.ValidPriority(*update.Priority) {
		return nil, domain.ErrInvalidPriority
	}

	if update.CategoryID.Set && update.CategoryID.Valid {
		if err := ts.checkCategoryOwnership(ctx, userID, update.CategoryID.Value); err != nil {
			return nil, err
		}
	}

	existing, err := ts.repo.GetByID(ctx, userID, id)

	if err != nil {
		return nil, err
	}

	merged := applyUpdate(existing, update)

	var tags []string

	if update.Tags != nil {
		tags = *update.Tags

		if tags == nil {
			tags = []string{}
		}
	} else {
		tags = nil
	}

	if _, err := ts.repo.Update(ctx, merged, tags); err != nil {
		ts.probe.RecordError(ctx, "todo.Update", err)
		return nil, err
	}

	ts.invalidateStats(ctx, userID)

	return ts.Get(ctx, userID, id)
}

func (ts *TodoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ts.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	ts.probe.RecordBusinessEvent(ctx, "todo.deleted", "todo", id.String(), userID)
	ts.invalidateStats(ctx, userID)

	return nil
}

func (ts *TodoService) BatchUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, patch domain.TodoPatch) (*response.BatchResponse, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "BatchUpdate", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
		attribute.Int("batch.size", len(ids)),
	})

	defer span.End()

	if err := ts.validateBatch(ctx, userID, ids, &patch); err != nil {
		return nil, err
	}

	affected, err := ts.repo.BatchUpdate(ctx, userID, ids, patch)

	if err != nil {
		ts.probe.RecordError(ctx, "todo.BatchUpdate", err)
		slog.Error("Batch update failed", "error", err, "user_id", userID, "ids", len(ids))

		return nil, err
	}

	ts.invalidateStats(ctx, userID)

	return &response.BatchResponse{AffectedIDs: affected}, nil
}

func (ts *TodoService) BatchDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (*response.BatchResponse, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "BatchDelete", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
		attribute.Int("batch.size", len(ids)),
	})

	defer span.End()

	if err := ts.validateBatch(ctx, userID, ids, nil); err != nil {
		return nil, err
	}

	affected, err := ts.repo.BatchDelete(ctx, userID, ids)

	if err != nil {
		ts.probe.RecordError(ctx, "todo.BatchDelete", err)
		slog.Error("Batch delete failed", "error", err, "user_id", userID, "ids", len(ids))

		return nil, err
	}

	ts.invalidateStats(ctx, userID)

	return &response.BatchResponse{AffectedIDs: affected}, nil
}

func (ts *TodoService) Stats(ctx context.Context, userID uuid.UUID) (*response.StatsView, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "Stats", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
	})

	defer span.End()

	key := statsKeyPrefix + userID.String()

	if cached, err := ts.cache.Get(ctx, key); err == nil && cached != nil {
		var view response.StatsView

		if err := json.Unmarshal(cached, &view); err == nil {
			return &view, nil
		}
	}

	stats, err := ts.repo.Stats(ctx, userID)

	if err != nil {
		ts.probe.RecordError(ctx, "todo.Stats", err)
		slog.Error("Error computing stats", "error", err, "user_id", userID)

		return nil, err
	}

	stats.ByPriority = domain.FillPriorityBuckets(stats.ByPriority)

	view := response.NewStatsView(stats)

	if payload, err := json.Marshal(view); err == nil {
		if err := ts.cache.Set(ctx, key, payload, statsCacheTTL); err != nil {
			slog.Warn("Failed to cache stats", "error", err, "user_id", userID)
		}
	}

	return view, nil
}

// validateBatch enforces the payload rules before any storage work: id set
// bounds, priority range, and category ownership when a patch carries one.
func (ts *TodoService) validateBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, patch *domain.TodoPatch) error {
	if len(ids) == 0 {
		return domain.ErrEmptyBatch
	}

	if len(ids) > maxBatchSize {
		return domain.ErrBatchTooLarge
	}

	if patch == nil {
		return nil
	}

	// a null completed carries no target state; treat it as absent rather
	// than writing the zero value
	if patch.Completed.Set && !patch.Completed.Valid {
		patch.Completed = domain.Optional[bool]{}
	}

	if patch.Empty() {
		return domain.ErrEmptyPatch
	}

	if patch.Priority.Set {
		if !patch.Priority.Valid || !domain.ValidPriority(patch.Priority.Value) {
			return domain.ErrInvalidPriority
		}
	}

	if patch.CategoryID.Set && patch.CategoryID.Valid {
		return ts.checkCategoryOwnership(ctx, userID, patch.CategoryID.Value)
	}

	return nil
}

func (ts *TodoService) checkCategoryOwnership(ctx context.Context, userID, categoryID uuid.UUID) error {
	_, err := ts.categories.GetByID(ctx, userID, categoryID)

	if err != nil {
		if domain.IsNotFound(err) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidCategory, categoryID)
		}

		return err
	}

	return nil
}

func (ts *TodoService) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if err := ts.cache.DeleteByPrefix(ctx, statsKeyPrefix+userID.String()); err != nil {
		slog.Warn("Failed to invalidate stats cache", "error", err, "user_id", userID)
	}
}

func applyUpdate(existing domain.Todo, update domain.TodoUpdate) domain.Todo {
	merged := existing

	if update.Title != nil {
		merged.Title = *update.Title
	}

	if update.Description.Set {
		if update.Description.Valid {
			merged.Description = &update.Description.Value
		} else {
			merged.Description = nil
		}
	}

	if update.Completed != nil {
		merged.Completed = *update.Completed
	}

	if update.Priority != nil {
		merged.Priority = *update.Priority
	}

	if update.DueDate.Set {
		if update.DueDate.Valid {
			merged.DueDate = &update.DueDate.Value
		} else {
			merged.DueDate = nil
		}
	}

	if update.CategoryID.Set {
		if update.CategoryID.Valid {
			merged.CategoryID = &update.CategoryID.Value
		} else {
			merged.CategoryID = nil
		}
	}

	merged.UpdatedAt = time.Now().UTC()

	return merged
}
