package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todohub/pkg/test"
	"todohub/pkg/test/factory"

	"todohub/internal/adapter/database/sqlite"
	"todohub/internal/adapter/database/sqlite/repository"
	"todohub/internal/core/domain"
	"todohub/internal/core/port"
	"todohub/internal/core/telemetry"
)

type TodoRepositoryTestSuite struct {
	suite.Suite
	DB       *sqlite.DB
	Repo     port.TodoRepository
	UserRepo port.UserRepository
	CatRepo  port.CategoryRepository
	TagRepo  port.TagRepository

	user domain.User
}

func (s *TodoRepositoryTestSuite) SetupTest() {
	s.DB = InitTestDB()

	s.Repo = repository.NewTodoRepository(s.DB, telemetry.NewNoOpProbe())
	s.UserRepo = repository.NewUserRepository(s.DB)
	s.CatRepo = repository.NewCategoryRepository(s.DB)
	s.TagRepo = repository.NewTagRepository(s.DB)

	s.user, _ = s.UserRepo.Create(context.Background(), factory.NewUser())
}

func (s *TodoRepositoryTestSuite) TearDownTest() {
	s.DB.Close()
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(TodoRepositoryTestSuite))
}

func (s *TodoRepositoryTestSuite) TestCreate_RoundTrip() {
	ctx := context.Background()

	todo := factory.NewTodo(s.user.ID, map[string]any{"Priority": 3})
	created, err := s.Repo.Create(ctx, todo, []string{"a", "b"})

	Expect(err).To(BeNil())
	Expect(created.ID).To(Equal(todo.ID))

	got, err := s.Repo.GetByID(ctx, s.user.ID, todo.ID)

	Expect(err).To(BeNil())
	Expect(got.Title).To(Equal(todo.Title))
	Expect(got.Priority).To(Equal(3))

	byTodo, err := s.Repo.TagsByTodoIDs(ctx, []uuid.UUID{todo.ID})

	Expect(err).To(BeNil())
	Expect(byTodo[todo.ID]).To(HaveLen(2))
}

func (s *TodoRepositoryTestSuite) TestCreate_ReusesExistingTagRow() {
	ctx := context.Background()

	first, err := s.Repo.Create(ctx, factory.NewTodo(s.user.ID, nil), []string{"shared"})
	Expect(err).To(BeNil())

	second, err := s.Repo.Create(ctx, factory.NewTodo(s.user.ID, nil), []string{"shared"})
	Expect(err).To(BeNil())

	byTodo, err := s.Repo.TagsByTodoIDs(ctx, []uuid.UUID{first.ID, second.ID})

	Expect(err).To(BeNil())
	Expect(byTodo[first.ID][0].ID).To(Equal(byTodo[second.ID][0].ID))

	tags, err := s.TagRepo.List(ctx, s.user.ID)

	Expect(err).To(BeNil())
	Expect(tags).To(HaveLen(1))
}

func (s *TodoRepositoryTestSuite) TestBatchUpdate_SingleStatementScoping() {
	ctx := context.Background()

	mine, err := s.Repo.Create(ctx, factory.NewTodo(s.user.ID, nil), nil)
	Expect(err).To(BeNil())

	stranger, err := s.UserRepo.Create(ctx, factory.NewUser())
	Expect(err).To(BeNil())

	theirs, err := s.Repo.Create(ctx, factory.NewTodo(stranger.ID, nil), nil)
	Expect(err).To(BeNil())

	affected, err := s.Repo.BatchUpdate(ctx, s.user.ID,
		[]uuid.UUID{mine.ID, theirs.ID, uuid.New()},
		domain.TodoPatch{Priority: domain.Some(4)},
	)

	Expect(err).To(BeNil())
	Expect(affected).To(ConsistOf([]uuid.UUID{mine.ID}))

	updated, err := s.Repo.GetByID(ctx, s.user.ID, mine.ID)

	Expect(err).To(BeNil())
	Expect(updated.Priority).To(Equal(4))
	Expect(updated.UpdatedAt.After(mine.UpdatedAt) || updated.UpdatedAt.Equal(mine.UpdatedAt)).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestBatchDelete() {
	ctx := context.Background()

	a, _ := s.Repo.Create(ctx, factory.NewTodo(s.user.ID, nil), nil)
	b, _ := s.Repo.Create(ctx, factory.NewTodo(s.user.ID, nil), []string{"keep"})

	affected, err := s.Repo.BatchDelete(ctx, s.user.ID, []uuid.UUID{a.ID, b.ID})

	Expect(err).To(BeNil())
	Expect(affected).To(ConsistOf(a.ID, b.ID))

	_, err = s.Repo.GetByID(ctx, s.user.ID, a.ID)
	Expect(err).To(MatchError(domain.ErrTodoNotFound))

	// links go with the todo, the tag row itself stays
	byTodo, err := s.Repo.TagsByTodoIDs(ctx, []uuid.UUID{b.ID})
	Expect(err).To(BeNil())
	Expect(byTodo[b.ID]).To(BeEmpty())

	tags, err := s.TagRepo.List(ctx, s.user.ID)
	Expect(err).To(BeNil())
	Expect(tags).To(HaveLen(1))
}

func (s *TodoRepositoryTestSuite) TestCategoryDelete_SetsNullOnTodos() {
	ctx := context.Background()

	category, err := s.CatRepo.Create(ctx, factory.NewCategory(s.user.ID, nil))
	Expect(err).To(BeNil())

	todo, err := s.Repo.Create(ctx, factory.NewTodo(s.user.ID, map[string]any{"CategoryID": &category.ID}), nil)
	Expect(err).To(BeNil())

	Expect(s.CatRepo.Delete(ctx, s.user.ID, category.ID)).To(Succeed())

	got, err := s.Repo.GetByID(ctx, s.user.ID, todo.ID)

	Expect(err).To(BeNil())
	Expect(got.CategoryID).To(BeNil())
}

func (s *TodoRepositoryTestSuite) TestUserDelete_CascadesEverything() {
	ctx := context.Background()

	category, _ := s.CatRepo.Create(ctx, factory.NewCategory(s.user.ID, nil))
	todo, err := s.Repo.Create(ctx, factory.NewTodo(s.user.ID, map[string]any{"CategoryID": &category.ID}), []string{"doomed"})
	Expect(err).To(BeNil())

	Expect(s.UserRepo.Delete(ctx, s.user.ID)).To(Succeed())

	_, err = s.Repo.GetByID(ctx, s.user.ID, todo.ID)
	Expect(err).To(MatchError(domain.ErrTodoNotFound))

	categories, err := s.CatRepo.List(ctx, s.user.ID)
	Expect(err).To(BeNil())
	Expect(categories).To(BeEmpty())

	tags, err := s.TagRepo.List(ctx, s.user.ID)
	Expect(err).To(BeNil())
	Expect(tags).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestStats_EmptyUser() {
	stats, err := s.Repo.Stats(context.Background(), s.user.ID)

	Expect(err).To(BeNil())
	Expect(stats.Total).To(BeZero())
	Expect(stats.ByCategory).To(BeEmpty())
}
