package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"

	config "task-board.com/task-board/internal/configs"
	"task-board.com/task-board/internal/recipes"
	"task-board.com/task-board/internal/services"
	"task-board.com/task-board/internal/store"
)

// app is the task side of the process: storage, background persister and
// the service over the store.
type app struct {
	tasks     *services.TaskService
	persister *services.PersistService
	closeRepo func()
}

func newApp(ctx context.Context, cfg config.Config) *app {
	repo, closeRepo, err := config.NewSnapshotRepository(cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	persister := services.NewPersistService(repo)
	taskService := services.NewTaskService(store.New(), repo, persister)

	if err := taskService.Load(ctx, cfg.SeedInitialTasks); err != nil {
		persister.Shutdown(ctx)
		closeRepo()
		log.Fatalf("failed to load board state: %v", err)
	}

	return &app{
		tasks:     taskService,
		persister: persister,
		closeRepo: closeRepo,
	}
}

// shutdown writes any pending snapshot and releases storage.
func (a *app) shutdown(ctx context.Context) {
	a.persister.Shutdown(ctx)
	a.closeRepo()
}

func newRecipeClient(cfg config.Config) *recipes.Client {
	return recipes.NewClient(
		recipes.WithBaseURL(cfg.RecipeAPIURL),
		recipes.WithDefaultQuery(cfg.RecipeDefaultQuery),
		recipes.WithTimeout(cfg.RecipeTimeout()),
		recipes.WithRetries(cfg.RecipeRetries),
		recipes.WithStaleTime(cfg.RecipeCacheTTL()),
	)
}
