package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todohub/pkg/test"
	"todohub/pkg/test/factory"

	"todohub/internal/adapter/cache/memory"
	"todohub/internal/adapter/database/sqlite"
	"todohub/internal/adapter/database/sqlite/repository"
	"todohub/internal/core/domain"
	"todohub/internal/core/port"
	"todohub/internal/core/service"
	"todohub/internal/core/telemetry"
)

type TodoServiceTestSuite struct {
	suite.Suite
	DB       *sqlite.DB
	UseCase  *service.TodoService
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	CatRepo  port.CategoryRepository

	user  domain.User
	other domain.User
}

func (s *TodoServiceTestSuite) SetupTest() {
	s.DB = InitTestDB()

	probe := telemetry.NewNoOpProbe()

	s.TodoRepo = repository.NewTodoRepository(s.DB, probe)
	s.UserRepo = repository.NewUserRepository(s.DB)
	s.CatRepo = repository.NewCategoryRepository(s.DB)

	s.UseCase = service.NewTodoService(s.TodoRepo, s.CatRepo, memory.New(), probe)

	ctx := context.Background()

	s.user, _ = s.UserRepo.Create(ctx, factory.NewUser())
	s.other, _ = s.UserRepo.Create(ctx, factory.NewUser())
}

func (s *TodoServiceTestSuite) TearDownTest() {
	s.DB.Close()
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) createTodo(custom map[string]any) domain.Todo {
	todo, err := s.TodoRepo.Create(context.Background(), factory.NewTodo(s.user.ID, custom), nil)

	Expect(err).To(BeNil())

	return todo
}

func boolPtr(v bool) *bool           { return &v }
func intPtr(v int) *int              { return &v }
func strPtr(v string) *string        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func (s *TodoServiceTestSuite) TestList_Empty() {
	data, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{})

	Expect(err).To(BeNil())
	Expect(data.Todos).To(BeEmpty())
	Expect(data.Total).To(BeZero())
	Expect(data.Page).To(Equal(1))
	Expect(data.PerPage).To(Equal(10))
}

func (s *TodoServiceTestSuite) TestList_ScopedToOwner() {
	s.createTodo(nil)
	s.TodoRepo.Create(context.Background(), factory.NewTodo(s.other.ID, nil), nil)

	data, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{})

	Expect(err).To(BeNil())
	Expect(data.Total).To(Equal(int64(1)))
}

func (s *TodoServiceTestSuite) TestList_FilterConjunction() {
	s.createTodo(map[string]any{"Completed": true, "Priority": 2})
	s.createTodo(map[string]any{"Completed": true, "Priority": 3})
	s.createTodo(map[string]any{"Completed": false, "Priority": 2})

	data, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{
		Completed: boolPtr(true),
		Priority:  intPtr(2),
	})

	Expect(err).To(BeNil())
	Expect(data.Total).To(Equal(int64(1)))
	Expect(data.Todos[0].Completed).To(BeTrue())
	Expect(data.Todos[0].Priority).To(Equal(2))
}

func (s *TodoServiceTestSuite) TestList_SearchMatchesTitleOrDescription() {
	s.createTodo(map[string]any{"Title": "Buy groceries"})
	s.createTodo(map[string]any{"Title": "Other", "Description": strPtr("grocery run notes")})
	s.createTodo(map[string]any{"Title": "Unrelated"})

	data, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{
		Search: strPtr("GROCER"),
	})

	Expect(err).To(BeNil())
	Expect(data.Total).To(Equal(int64(2)))
}

func (s *TodoServiceTestSuite) TestList_TagPartialMatch() {
	ctx := context.Background()

	tagged := factory.NewTodo(s.user.ID, nil)
	_, err := s.TodoRepo.Create(ctx, tagged, []string{"urgent-work"})
	Expect(err).To(BeNil())

	s.createTodo(nil)

	data, err := s.UseCase.List(ctx, s.user.ID, domain.TodoFilter{Tag: strPtr("URGENT")})

	Expect(err).To(BeNil())
	Expect(data.Total).To(Equal(int64(1)))
	Expect(data.Todos[0].ID).To(Equal(tagged.ID))
}

func (s *TodoServiceTestSuite) TestList_OverdueExcludesCompletedAndFuture() {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	overdue := s.createTodo(map[string]any{"DueDate": timePtr(yesterday)})
	s.createTodo(map[string]any{"DueDate": timePtr(yesterday), "Completed": true})
	s.createTodo(map[string]any{"DueDate": timePtr(tomorrow)})
	s.createTodo(nil)

	data, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{Overdue: boolPtr(true)})

	Expect(err).To(BeNil())
	Expect(data.Total).To(Equal(int64(1)))
	Expect(data.Todos[0].ID).To(Equal(overdue.ID))
}

func (s *TodoServiceTestSuite) TestList_OrderingAndPagination() {
	base := time.Now().UTC().Truncate(time.Second)

	oldest := s.createTodo(map[string]any{"CreatedAt": base.Add(-2 * time.Hour), "UpdatedAt": base})
	middle := s.createTodo(map[string]any{"CreatedAt": base.Add(-1 * time.Hour), "UpdatedAt": base})
	newest := s.createTodo(map[string]any{"CreatedAt": base, "UpdatedAt": base})

	page1, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{
		Page:    intPtr(1),
		PerPage: intPtr(2),
	})

	Expect(err).To(BeNil())
	Expect(page1.Total).To(Equal(int64(3)))
	Expect(page1.Todos).To(HaveLen(2))
	Expect(page1.Todos[0].ID).To(Equal(newest.ID))
	Expect(page1.Todos[1].ID).To(Equal(middle.ID))

	page2, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{
		Page:    intPtr(2),
		PerPage: intPtr(2),
	})

	Expect(err).To(BeNil())
	Expect(page2.Todos).To(HaveLen(1))
	Expect(page2.Todos[0].ID).To(Equal(oldest.ID))
}

func (s *TodoServiceTestSuite) TestList_CreatedAtTieBreaksOnID() {
	base := time.Now().UTC().Truncate(time.Second)

	a := s.createTodo(map[string]any{"CreatedAt": base, "UpdatedAt": base})
	b := s.createTodo(map[string]any{"CreatedAt": base, "UpdatedAt": base})

	expected := []uuid.UUID{a.ID, b.ID}

	if b.ID.String() > a.ID.String() {
		expected = []uuid.UUID{b.ID, a.ID}
	}

	data, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{})

	Expect(err).To(BeNil())
	Expect(data.Todos[0].ID).To(Equal(expected[0]))
	Expect(data.Todos[1].ID).To(Equal(expected[1]))
}

func (s *TodoServiceTestSuite) TestList_InvalidPagination() {
	_, err := s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{Page: intPtr(0)})
	Expect(err).To(MatchError(domain.ErrInvalidPage))

	_, err = s.UseCase.List(context.Background(), s.user.ID, domain.TodoFilter{PerPage: intPtr(-5)})
	Expect(err).To(MatchError(domain.ErrInvalidPerPage))
}

func (s *TodoServiceTestSuite) TestList_AssemblesCategoryAndTags() {
	ctx := context.Background()

	category, err := s.CatRepo.Create(ctx, factory.NewCategory(s.user.ID, map[string]any{"Name": "Work"}))
	Expect(err).To(BeNil())

	todo := factory.NewTodo(s.user.ID, map[string]any{"CategoryID": &category.ID})
	_, err = s.TodoRepo.Create(ctx, todo, []string{"alpha", "beta"})
	Expect(err).To(BeNil())

	bare := s.createTodo(nil)

	data, err := s.UseCase.List(ctx, s.user.ID, domain.TodoFilter{})

	Expect(err).To(BeNil())
	Expect(data.Todos).To(HaveLen(2))

	for _, view := range data.Todos {
		switch view.ID {
		case todo.ID:
			Expect(view.Category).NotTo(BeNil())
			Expect(view.Category.Name).To(Equal("Work"))
			Expect(view.Tags).To(HaveLen(2))
			Expect(view.Tags[0].Name).To(Equal("alpha"))
			Expect(view.Tags[1].Name).To(Equal("beta"))
		case bare.ID:
			Expect(view.Category).To(BeNil())
			Expect(view.Tags).To(BeEmpty())
		}
	}
}

func (s *TodoServiceTestSuite) TestCreate_DefaultsAndView() {
	view, err := s.UseCase.Create(context.Background(), s.user.ID, domain.Todo{
		Title: "Write report",
	}, []string{"writing"})

	Expect(err).To(BeNil())
	Expect(view.Title).To(Equal("Write report"))
	Expect(view.Completed).To(BeFalse())
	Expect(view.Priority).To(Equal(0))
	Expect(view.UserID).To(Equal(s.user.ID))
	Expect(view.Tags).To(HaveLen(1))
	Expect(view.Tags[0].Name).To(Equal("writing"))
}

func (s *TodoServiceTestSuite) TestCreate_RejectsInvalidPriority() {
	_, err := s.UseCase.Create(context.Background(), s.user.ID, domain.Todo{
		Title:    "Bad",
		Priority: 9,
	}, nil)

	Expect(err).To(MatchError(domain.ErrInvalidPriority))
}

func (s *TodoServiceTestSuite) TestCreate_RejectsForeignCategory() {
	ctx := context.Background()

	foreign, err := s.CatRepo.Create(ctx, factory.NewCategory(s.other.ID, nil))
	Expect(err).To(BeNil())

	_, err = s.UseCase.Create(ctx, s.user.ID, domain.Todo{
		Title:      "Sneaky",
		CategoryID: &foreign.ID,
	}, nil)

	Expect(err).To(MatchError(domain.ErrInvalidCategory))
	Expect(domain.IsValidation(err)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_TriStateFields() {
	ctx := context.Background()

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	todo := s.createTodo(map[string]any{
		"Description": strPtr("keep me"),
		"DueDate":     timePtr(due),
	})

	// absent fields leave values untouched
	view, err := s.UseCase.Update(ctx, s.user.ID, todo.ID, domain.TodoUpdate{
		Title: strPtr("Renamed"),
	})

	Expect(err).To(BeNil())
	Expect(view.Title).To(Equal("Renamed"))
	Expect(view.Description).NotTo(BeNil())
	Expect(view.DueDate).NotTo(BeNil())

	// explicit null clears them
	view, err = s.UseCase.Update(ctx, s.user.ID, todo.ID, domain.TodoUpdate{
		Description: domain.Null[string](),
		DueDate:     domain.Null[time.Time](),
	})

	Expect(err).To(BeNil())
	Expect(view.Description).To(BeNil())
	Expect(view.DueDate).To(BeNil())
}

func (s *TodoServiceTestSuite) TestUpdate_ReplacesTagSet() {
	ctx := context.Background()

	todo := factory.NewTodo(s.user.ID, nil)
	_, err := s.TodoRepo.Create(ctx, todo, []string{"old"})
	Expect(err).To(BeNil())

	tags := []string{"fresh", "new"}
	view, err := s.UseCase.Update(ctx, s.user.ID, todo.ID, domain.TodoUpdate{Tags: &tags})

	Expect(err).To(BeNil())
	Expect(view.Tags).To(HaveLen(2))
	Expect(view.Tags[0].Name).To(Equal("fresh"))
	Expect(view.Tags[1].Name).To(Equal("new"))
}

func (s *TodoServiceTestSuite) TestUpdate_NotFoundForForeignTodo() {
	foreign, err := s.TodoRepo.Create(context.Background(), factory.NewTodo(s.other.ID, nil), nil)
	Expect(err).To(BeNil())

	_, err = s.UseCase.Update(context.Background(), s.user.ID, foreign.ID, domain.TodoUpdate{
		Completed: boolPtr(true),
	})

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoServiceTestSuite) TestDelete_NotFound() {
	err := s.UseCase.Delete(context.Background(), s.user.ID, uuid.New())

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
	Expect(domain.IsNotFound(err)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestBatchUpdate_SkipsForeignAndMissingIDs() {
	ctx := context.Background()

	mine := s.createTodo(nil)
	foreign, _ := s.TodoRepo.Create(ctx, factory.NewTodo(s.other.ID, nil), nil)

	data, err := s.UseCase.BatchUpdate(ctx, s.user.ID,
		[]uuid.UUID{mine.ID, foreign.ID, uuid.New()},
		domain.TodoPatch{Completed: domain.Some(true)},
	)

	Expect(err).To(BeNil())
	Expect(data.AffectedIDs).To(ConsistOf([]uuid.UUID{mine.ID}))

	updated, err := s.TodoRepo.GetByID(ctx, s.user.ID, mine.ID)
	Expect(err).To(BeNil())
	Expect(updated.Completed).To(BeTrue())

	untouched, err := s.TodoRepo.GetByID(ctx, s.other.ID, foreign.ID)
	Expect(err).To(BeNil())
	Expect(untouched.Completed).To(BeFalse())
}

func (s *TodoServiceTestSuite) TestBatchUpdate_DetachesCategoryOnNull() {
	ctx := context.Background()

	category, _ := s.CatRepo.Create(ctx, factory.NewCategory(s.user.ID, nil))
	todo := s.createTodo(map[string]any{"CategoryID": &category.ID})

	data, err := s.UseCase.BatchUpdate(ctx, s.user.ID, []uuid.UUID{todo.ID}, domain.TodoPatch{
		CategoryID: domain.Null[uuid.UUID](),
	})

	Expect(err).To(BeNil())
	Expect(data.AffectedIDs).To(HaveLen(1))

	updated, _ := s.TodoRepo.GetByID(ctx, s.user.ID, todo.ID)
	Expect(updated.CategoryID).To(BeNil())
}

func (s *TodoServiceTestSuite) TestBatchUpdate_NullCompletedLeavesValueUnchanged() {
	ctx := context.Background()

	todo := s.createTodo(map[string]any{"Completed": true})

	data, err := s.UseCase.BatchUpdate(ctx, s.user.ID, []uuid.UUID{todo.ID}, domain.TodoPatch{
		Completed: domain.Null[bool](),
		Priority:  domain.Some(2),
	})

	Expect(err).To(BeNil())
	Expect(data.AffectedIDs).To(ConsistOf([]uuid.UUID{todo.ID}))

	updated, _ := s.TodoRepo.GetByID(ctx, s.user.ID, todo.ID)
	Expect(updated.Completed).To(BeTrue())
	Expect(updated.Priority).To(Equal(2))

	// with nothing else in the patch a null completed leaves no work to do
	_, err = s.UseCase.BatchUpdate(ctx, s.user.ID, []uuid.UUID{todo.ID}, domain.TodoPatch{
		Completed: domain.Null[bool](),
	})
	Expect(err).To(MatchError(domain.ErrEmptyPatch))
}

func (s *TodoServiceTestSuite) TestBatchUpdate_ValidatesPayload() {
	ctx := context.Background()
	todo := s.createTodo(nil)

	_, err := s.UseCase.BatchUpdate(ctx, s.user.ID, nil, domain.TodoPatch{Completed: domain.Some(true)})
	Expect(err).To(MatchError(domain.ErrEmptyBatch))

	_, err = s.UseCase.BatchUpdate(ctx, s.user.ID, []uuid.UUID{todo.ID}, domain.TodoPatch{})
	Expect(err).To(MatchError(domain.ErrEmptyPatch))

	_, err = s.UseCase.BatchUpdate(ctx, s.user.ID, []uuid.UUID{todo.ID}, domain.TodoPatch{
		Priority: domain.Some(7),
	})
	Expect(err).To(MatchError(domain.ErrInvalidPriority))

	oversized := make([]uuid.UUID, 101)

	for i := range oversized {
		oversized[i] = uuid.New()
	}

	_, err = s.UseCase.BatchUpdate(ctx, s.user.ID, oversized, domain.TodoPatch{Completed: domain.Some(true)})
	Expect(err).To(MatchError(domain.ErrBatchTooLarge))
}

func (s *TodoServiceTestSuite) TestBatchUpdate_RejectsForeignCategory() {
	ctx := context.Background()

	todo := s.createTodo(nil)
	foreign, _ := s.CatRepo.Create(ctx, factory.NewCategory(s.other.ID, nil))

	_, err := s.UseCase.BatchUpdate(ctx, s.user.ID, []uuid.UUID{todo.ID}, domain.TodoPatch{
		CategoryID: domain.Some(foreign.ID),
	})

	Expect(err).To(MatchError(domain.ErrInvalidCategory))
}

func (s *TodoServiceTestSuite) TestBatchDelete_ScopedAndReported() {
	ctx := context.Background()

	a := s.createTodo(nil)
	b := s.createTodo(nil)
	foreign, _ := s.TodoRepo.Create(ctx, factory.NewTodo(s.other.ID, nil), nil)

	data, err := s.UseCase.BatchDelete(ctx, s.user.ID, []uuid.UUID{a.ID, b.ID, foreign.ID})

	Expect(err).To(BeNil())
	Expect(data.AffectedIDs).To(ConsistOf(a.ID, b.ID))

	_, err = s.TodoRepo.GetByID(ctx, s.other.ID, foreign.ID)
	Expect(err).To(BeNil())
}

func (s *TodoServiceTestSuite) TestStats_Scenario() {
	ctx := context.Background()

	yesterday := time.Now().UTC().Add(-24 * time.Hour)

	s.createTodo(map[string]any{"Priority": 4, "DueDate": timePtr(yesterday)})
	s.createTodo(map[string]any{"Priority": 1, "Completed": true})

	stats, err := s.UseCase.Stats(ctx, s.user.ID)

	Expect(err).To(BeNil())
	Expect(stats.TotalTodos).To(Equal(int64(2)))
	Expect(stats.CompletedTodos).To(Equal(int64(1)))
	Expect(stats.PendingTodos).To(Equal(int64(1)))
	Expect(stats.OverdueTodos).To(Equal(int64(1)))

	Expect(stats.TodosByPriority).To(HaveLen(5))

	counts := map[int]int64{}

	for _, bucket := range stats.TodosByPriority {
		counts[bucket.Priority] = bucket.Count
	}

	Expect(counts).To(Equal(map[int]int64{0: 0, 1: 1, 2: 0, 3: 0, 4: 1}))
}

func (s *TodoServiceTestSuite) TestStats_UncategorizedBucket() {
	ctx := context.Background()

	category, _ := s.CatRepo.Create(ctx, factory.NewCategory(s.user.ID, map[string]any{"Name": "Home"}))
	s.createTodo(map[string]any{"CategoryID": &category.ID})
	s.createTodo(nil)

	stats, err := s.UseCase.Stats(ctx, s.user.ID)

	Expect(err).To(BeNil())
	Expect(stats.TodosByCategory).To(HaveLen(2))

	var sawNamed, sawUncategorized bool

	for _, bucket := range stats.TodosByCategory {
		if bucket.CategoryID == nil {
			sawUncategorized = true
			Expect(bucket.CategoryName).To(BeNil())
		} else {
			sawNamed = true
			Expect(*bucket.CategoryName).To(Equal("Home"))
		}

		Expect(bucket.Count).To(Equal(int64(1)))
	}

	Expect(sawNamed).To(BeTrue())
	Expect(sawUncategorized).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestStats_CachedUntilMutation() {
	ctx := context.Background()

	s.createTodo(nil)

	first, err := s.UseCase.Stats(ctx, s.user.ID)
	Expect(err).To(BeNil())
	Expect(first.TotalTodos).To(Equal(int64(1)))

	// direct repo write bypasses invalidation, so the cached value survives
	_, err = s.TodoRepo.Create(ctx, factory.NewTodo(s.user.ID, nil), nil)
	Expect(err).To(BeNil())

	cached, err := s.UseCase.Stats(ctx, s.user.ID)
	Expect(err).To(BeNil())
	Expect(cached.TotalTodos).To(Equal(int64(1)))

	// a service-level mutation invalidates and the next read is fresh
	_, err = s.UseCase.Create(ctx, s.user.ID, domain.Todo{Title: "Third"}, nil)
	Expect(err).To(BeNil())

	fresh, err := s.UseCase.Stats(ctx, s.user.ID)
	Expect(err).To(BeNil())
	Expect(fresh.TotalTodos).To(Equal(int64(3)))
}
