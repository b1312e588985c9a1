package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/wbs/internal/cli"
	"github.com/alexanderramin/wbs/internal/cli/formatter"
	"github.com/alexanderramin/wbs/internal/config"
	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/httpapi"
	"github.com/alexanderramin/wbs/internal/repository"
	"github.com/alexanderramin/wbs/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	personRepo := repository.NewSQLitePersonRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	collectionRepo := repository.NewSQLiteCollectionRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// CLI and HTTP writes to the same project queue on one lock table and
	// invalidate the same in-flight reads.
	opts := []service.Option{
		service.WithCoordinator(service.NewCoordinator()),
		service.WithLatency(cfg.Latency()),
	}
	if cfg.Logging.UseCases {
		opts = append(opts, service.WithObserver(service.NewLogUseCaseObserver(os.Stderr)))
	}

	// Wire services
	wbsSvc := service.NewWbsService(uow, projectRepo, collectionRepo, opts...)
	projectSvc := service.NewProjectService(projectRepo, opts...)
	exportSvc := service.NewExportService(wbsSvc, projectRepo, personRepo, opts...)
	importSvc := service.NewImportService(uow, taskRepo, opts...)

	app := &cli.App{
		Projects:    projectSvc,
		People:      service.NewPersonService(personRepo, opts...),
		Wbs:         wbsSvc,
		Export:      exportSvc,
		Import:      importSvc,
		Tasks:       taskRepo,
		DefaultAddr: cfg.HTTP.Addr,
	}

	app.Serve = func(ctx context.Context, addr string) error {
		gin.SetMode(gin.ReleaseMode)
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
		srv := httpapi.NewServer(httpapi.Services{
			Projects: projectSvc,
			Wbs:      wbsSvc,
			Export:   exportSvc,
			Import:   importSvc,
		}, logger)
		logger.Info("listening", "addr", addr, "db", cfg.DBPath)
		return srv.Run(ctx, addr)
	}

	fd := os.Stdout.Fd()
	formatter.SetPlain(!(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)))

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
