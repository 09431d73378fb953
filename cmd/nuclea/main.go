package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/cli"
	"github.com/alexanderramin/nuclea/internal/config"
	"github.com/alexanderramin/nuclea/internal/db"
	"github.com/alexanderramin/nuclea/internal/llm"
	"github.com/alexanderramin/nuclea/internal/logger"
	"github.com/alexanderramin/nuclea/internal/metrics"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/server"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	m := metrics.NewManager()

	// Wire the model gateway
	var llmObserver llm.Observer = m
	if cfg.LLMLogCalls {
		llmObserver = llm.MultiObserver{llm.NewLogObserver(log), m}
	}
	client, err := llm.NewClient(ctx, cfg.LLM(), llmObserver)
	if err != nil {
		return fmt.Errorf("creating model client: %w", err)
	}

	pipeline := analysis.New(client,
		analysis.WithObserver(analysis.StageObservers{analysis.NewLogStageObserver(log), m}),
		analysis.WithRetries(cfg.LLMMaxRetries, 500*time.Millisecond),
	)

	// Wire persistence, or run without it
	var (
		recorder service.Recorder
		works    repository.WorkRepo
		analyses repository.AnalysisRepo
	)
	if cfg.Persistence == config.PersistenceSQLite {
		dbPath, err := cfg.ResolvedDBPath()
		if err != nil {
			return err
		}
		database, err := db.OpenDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		recorder = service.NewSQLRecorder(db.NewSQLiteUnitOfWork(database))
		works = repository.NewSQLiteWorkRepo(database)
		analyses = repository.NewSQLiteAnalysisRepo(database)
	}

	useCaseObserver := service.UseCaseObservers{service.NewLogUseCaseObserver(log), m}
	app := &cli.App{
		Analysis: service.NewAnalysisService(pipeline, client.ModelName(), recorder, analyses, log, useCaseObserver),
		Profiles: service.NewProfileService(works, analyses, useCaseObserver),
		IsInteractive: func() bool {
			return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
				isatty.IsTerminal(os.Stderr.Fd())
		},
	}
	app.Serve = func(ctx context.Context) error {
		log.Info("serve configuration", "addr", cfg.Addr, "provider", cfg.LLMProvider, "persistence", cfg.Persistence)
		return server.NewServer(cfg.Addr, server.RouterConfig{
			Analysis:       app.Analysis,
			Profiles:       app.Profiles,
			Metrics:        m,
			Logger:         log,
			CORSOrigins:    cfg.Origins(),
			AnalyzeTimeout: cfg.AnalyzeTimeout(),
		}).Run(ctx)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
