package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/safend/workorders/internal/cli"
	"github.com/safend/workorders/internal/config"
	"github.com/safend/workorders/internal/db"
	"github.com/safend/workorders/internal/repository"
	"github.com/safend/workorders/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire observers
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, cfg.SlogLevel()))
	}
	if cfg.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		metrics, mErr := service.NewMetricsObserver(reg)
		if mErr != nil {
			return fmt.Errorf("registering metrics: %w", mErr)
		}
		observers = append(observers, metrics)
		defer func() {
			if wErr := prometheus.WriteToTextfile(cfg.MetricsFile, reg); wErr != nil && err == nil {
				err = fmt.Errorf("writing metrics: %w", wErr)
			}
		}()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	// Wire repositories and unit of work
	orderRepo := repository.NewSQLiteWorkOrderRepo(database)
	postRepo := repository.NewSQLiteOperationalPostRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	ops := service.NewOperationalPostService(postRepo, uow, observers...)
	orders := service.NewWorkOrderService(orderRepo, ops, uow, service.WorkOrderOptions{
		Currency: cfg.Currency,
		IDScheme: cfg.IDScheme,
		Logger:   logger,
	}, observers...)

	app := &cli.App{
		WorkOrders: orders,
		Ops:        ops,
		Import:     service.NewImportService(orders, observers...),
	}

	// The work order form only opens on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
