package cmd

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"gorm.io/gorm"

	config "taskboard.com/taskboard/internal/configs"
	"taskboard.com/taskboard/internal/events"
	httpapi "taskboard.com/taskboard/internal/http"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
)

// app holds everything the commands share once configuration is loaded.
type app struct {
	cfg         config.Config
	db          *gorm.DB
	redis       rueidis.Client
	publisher   events.Publisher
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	tagRepo     *repository.TagRepository
}

func newApp(cfg config.Config) *app {
	db := config.New(cfg.DatabaseDSN, cfg.DatabaseLogLevel)

	a := &app{
		cfg:         cfg,
		db:          db,
		publisher:   events.NopPublisher{},
		taskRepo:    repository.NewTaskRepository(db),
		projectRepo: repository.NewProjectRepository(db),
		tagRepo:     repository.NewTagRepository(db),
	}

	if cfg.RedisEnabled() {
		a.redis = config.NewRedisClient(cfg.RedisAddr)
		a.publisher = events.NewRedisPublisher(a.redis, cfg.RedisEventsChannel)
	}

	return a
}

func (a *app) limiter() middleware.Limiter {
	if a.redis != nil {
		return middleware.NewRedisLimiter(a.redis, a.cfg.RedisRateLimitPrefix, a.cfg.RateLimit, time.Minute)
	}
	return middleware.NewMemoryLimiter(a.cfg.RateLimit, time.Minute)
}

func (a *app) server() *echo.Echo {
	taskService := services.NewTaskService(a.taskRepo, a.projectRepo, a.tagRepo, a.publisher)
	projectService := services.NewProjectService(a.projectRepo, a.publisher)
	tagService := services.NewTagService(a.tagRepo, a.publisher)
	boardService := services.NewBoardService(taskService, projectService, tagService)

	e := echo.New()
	e.HideBanner = true

	handler := httpapi.NewHandler(taskService, projectService, tagService, boardService)
	httpapi.Register(e, handler, a.limiter())

	return e
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}
}
