package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/config"
	"github.com/srujanr7/ticketday-1-sub000/internal/db"
	"github.com/srujanr7/ticketday-1-sub000/internal/insight"
	"github.com/srujanr7/ticketday-1-sub000/internal/llm"
	"github.com/srujanr7/ticketday-1-sub000/internal/metrics"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
	"github.com/srujanr7/ticketday-1-sub000/internal/server"
	"github.com/srujanr7/ticketday-1-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local .env for development; ignored when absent.
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "TaskFlow project dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.AddCommand(serve)

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			database, err := db.OpenDB(cfg.DB.Path)
			if err != nil {
				return err
			}
			return database.Close()
		},
	}
	root.AddCommand(migrate)

	return root.Execute()
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	llmCfg := llm.LoadConfig()
	client, err := buildModelClient(llmCfg, log)
	if err != nil {
		return err
	}

	fetcher := insight.NewFetcher(projectRepo, taskRepo, memberRepo)
	cache, err := insight.NewCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("creating insight cache: %w", err)
	}
	applier := insight.NewApplier(uow, log)

	insights := insight.NewService(fetcher, client, cache, log)
	taskGen := insight.NewTaskGenService(fetcher, client, applier, cache, log)
	schedule := insight.NewScheduleService(fetcher, eventRepo, client, applier, log)

	srv := server.New(log,
		service.NewProjectService(projectRepo, memberRepo),
		service.NewTaskService(taskRepo, assignmentRepo, memberRepo),
		service.NewEventService(eventRepo),
		service.NewMemberService(memberRepo, projectRepo),
		insights, taskGen, schedule)

	log.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("model_enabled", llmCfg.Enabled),
		zap.String("model_provider", string(llmCfg.Provider)))
	return srv.Engine().Run(cfg.Server.Addr)
}

// buildModelClient returns nil when the model subsystem is disabled; the
// insight service falls back to its heuristic and generation routes report
// the endpoint as unavailable.
func buildModelClient(cfg llm.Config, log *zap.Logger) (llm.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	observer := llm.MultiObserver{metrics.PromObserver{}}
	if cfg.LogCalls {
		observer = append(observer, llm.NewZapObserver(log))
	}

	switch cfg.Provider {
	case llm.ProviderGemini:
		return llm.NewGeminiClient(context.Background(), cfg, observer)
	case llm.ProviderOllama:
		return llm.NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
