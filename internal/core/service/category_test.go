package service_test

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
	"todohub/internal/core/service"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	DB       *sqlite.DB
	UseCase  *service.CategoryService
	UserRepo port.UserRepository
	CatRepo  port.CategoryRepository

	user  domain.User
	other domain.User
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.DB = InitTestDB()
	s.UserRepo = repository.NewUserRepository(s.DB)
	s.CatRepo = repository.NewCategoryRepository(s.DB)
	s.UseCase = service.NewCategoryService(s.CatRepo)

	ctx := context.Background()

	s.user, _ = s.UserRepo.Create(ctx, factory.NewUser())
	s.other, _ = s.UserRepo.Create(ctx, factory.NewUser())
}

func (s *CategoryServiceTestSuite) TearDownTest() {
	s.DB.Close()
}

func TestCategoryServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(CategoryServiceTestSuite))
}

func (s *CategoryServiceTestSuite) TestCreateAndList() {
	ctx := context.Background()

	created, err := s.UseCase.Create(ctx, s.user.ID, domain.Category{
		Name:  "Work",
		Color: strPtr("#ff0000"),
	})

	Expect(err).To(BeNil())
	Expect(created.Name).To(Equal("Work"))
	Expect(created.UserID).To(Equal(s.user.ID))

	list, err := s.UseCase.List(ctx, s.user.ID)

	Expect(err).To(BeNil())
	Expect(list).To(HaveLen(1))
}

func (s *CategoryServiceTestSuite) TestCreate_NameTakenWithinUser() {
	ctx := context.Background()

	_, err := s.UseCase.Create(ctx, s.user.ID, domain.Category{Name: "Work"})
	Expect(err).To(BeNil())

	_, err = s.UseCase.Create(ctx, s.user.ID, domain.Category{Name: "Work"})

	Expect(err).To(MatchError(domain.ErrCategoryNameTaken))
	Expect(domain.IsConflict(err)).To(BeTrue())

	// the same name is free for another user
	_, err = s.UseCase.Create(ctx, s.other.ID, domain.Category{Name: "Work"})
	Expect(err).To(BeNil())
}

func (s *CategoryServiceTestSuite) TestUpdate_PartialFields() {
	ctx := context.Background()

	created, err := s.UseCase.Create(ctx, s.user.ID, domain.Category{
		Name:        "Work",
		Description: strPtr("office things"),
	})
	Expect(err).To(BeNil())

	updated, err := s.UseCase.Update(ctx, s.user.ID, created.ID, strPtr("Office"), nil, strPtr("#00ff00"))

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("Office"))
	Expect(updated.Description).NotTo(BeNil())
	Expect(*updated.Description).To(Equal("office things"))
	Expect(updated.Color).NotTo(BeNil())
}

func (s *CategoryServiceTestSuite) TestUpdate_RenameToTakenName() {
	ctx := context.Background()

	_, err := s.UseCase.Create(ctx, s.user.ID, domain.Category{Name: "Work"})
	Expect(err).To(BeNil())

	second, err := s.UseCase.Create(ctx, s.user.ID, domain.Category{Name: "Home"})
	Expect(err).To(BeNil())

	_, err = s.UseCase.Update(ctx, s.user.ID, second.ID, strPtr("Work"), nil, nil)

	Expect(err).To(MatchError(domain.ErrCategoryNameTaken))
}

func (s *CategoryServiceTestSuite) TestGet_ScopedToOwner() {
	ctx := context.Background()

	foreign, err := s.CatRepo.Create(ctx, factory.NewCategory(s.other.ID, nil))
	Expect(err).To(BeNil())

	_, err = s.UseCase.Get(ctx, s.user.ID, foreign.ID)

	Expect(err).To(MatchError(domain.ErrCategoryNotFound))
}

func (s *CategoryServiceTestSuite) TestDelete_NotFound() {
	err := s.UseCase.Delete(context.Background(), s.user.ID, uuid.New())

	Expect(err).To(MatchError(domain.ErrCategoryNotFound))
}
