package http

import (
	"context"
	"fmt"

	"todohub/internal/adapter/cache/memory"
	"todohub/internal/adapter/cache/redis"
	"todohub/internal/adapter/database/postgres"
	pgrepo "todohub/internal/adapter/database/postgres/repository"
	"todohub/internal/adapter/database/sqlite"
	sqliterepo "todohub/internal/adapter/database/sqlite/repository"
	"todohub/internal/adapter/http/handler"
	"todohub/internal/core/port"
	"todohub/internal/core/service"
	"todohub/internal/core/telemetry"
	"todohub/pkg/config"
)

type Container struct {
	UserRepo     port.UserRepository
	TodoRepo     port.TodoRepository
	CategoryRepo port.CategoryRepository
	TagRepo      port.TagRepository
	Cache        port.CacheRepository

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	TodoHandler     *handler.TodoHandler
	CategoryHandler *handler.CategoryHandler
	TagHandler      *handler.TagHandler

	closers []func() error
}

func NewContainer(ctx context.Context, cfg *config.AppConfig, metrics *telemetry.AppMetrics) (*Container, error) {
	container := &Container{}

	probe := telemetry.NewOtelProbe("todohub")

	switch cfg.DatabaseAdapter {
	case "postgres":
		db, err := postgres.NewDB(ctx)

		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}

		container.closers = append(container.closers, func() error {
			db.Close()
			return nil
		})

		container.UserRepo = pgrepo.NewUserRepository(db)
		container.TodoRepo = pgrepo.NewTodoRepository(db, probe)
		container.CategoryRepo = pgrepo.NewCategoryRepository(db)
		container.TagRepo = pgrepo.NewTagRepository(db)

	case "sqlite":
		db, err := sqlite.NewDB()

		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}

		container.closers = append(container.closers, db.Close)

		container.UserRepo = sqliterepo.NewUserRepository(db)
		container.TodoRepo = sqliterepo.NewTodoRepository(db, probe)
		container.CategoryRepo = sqliterepo.NewCategoryRepository(db)
		container.TagRepo = sqliterepo.NewTagRepository(db)

	default:
		return nil, fmt.Errorf("unknown database adapter %q", cfg.DatabaseAdapter)
	}

	if cfg.RedisURL != "" {
		cache, err := redis.New(ctx, cfg.RedisURL)

		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}

		container.Cache = cache
	} else {
		container.Cache = memory.New()
	}

	container.closers = append(container.closers, container.Cache.Close)

	authSvc := service.NewAuthService(container.UserRepo)
	userSvc := service.NewUserService(container.UserRepo)
	todoSvc := service.NewTodoService(container.TodoRepo, container.CategoryRepo, container.Cache, probe)
	categorySvc := service.NewCategoryService(container.CategoryRepo)
	tagSvc := service.NewTagService(container.TagRepo)

	container.AuthHandler = handler.NewAuthHandler(authSvc)
	container.UserHandler = handler.NewUserHandler(userSvc)
	container.TodoHandler = handler.NewTodoHandler(todoSvc, metrics)
	container.CategoryHandler = handler.NewCategoryHandler(categorySvc)
	container.TagHandler = handler.NewTagHandler(tagSvc)

	return container, nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
}
