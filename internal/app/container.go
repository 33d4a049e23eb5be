// Package app wires application services with infrastructure adapters.
package app

import (
	"context"

	"github.com/quiverlabs/nlsh/internal/application/ask"
	"github.com/quiverlabs/nlsh/internal/application/doctor"
	"github.com/quiverlabs/nlsh/internal/infrastructure/cache"
	"github.com/quiverlabs/nlsh/internal/infrastructure/config"
	"github.com/quiverlabs/nlsh/internal/infrastructure/executor"
	"github.com/quiverlabs/nlsh/internal/infrastructure/history"
	"github.com/quiverlabs/nlsh/internal/infrastructure/translator"
	"github.com/quiverlabs/nlsh/internal/pkg/logger"
	"github.com/quiverlabs/nlsh/internal/ports"
	"github.com/quiverlabs/nlsh/internal/safety"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	AskService     *ask.Service
	DoctorService  *doctor.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Classifier     ports.Classifier
	Executor       ports.CommandExecutor
	HistoryStore   ports.HistoryRepository
	CacheStore     ports.CacheRepository
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	catalog, err := safety.NewCatalog(cfg.Safety.RulesFile)
	if err != nil {
		log.Warn("policy rules file rejected, using built-in catalog", map[string]interface{}{"error": err.Error()})
		catalog = safety.DefaultCatalog()
	}
	classifier := safety.NewClassifier(catalog)

	historyStore := history.NewSQLiteStore()
	cacheStore := cache.NewFileCache(cfg.GetCacheMaxEntries())
	localExecutor := executor.NewLocalExecutor(cfg.GetExecutionShell())

	askService := &ask.Service{
		ConfigProvider:    cfgLoader,
		TranslatorFactory: translator.NewFactory(),
		Classifier:        classifier,
		Executor:          localExecutor,
		History:           historyStore,
		Cache:             cacheStore,
		Logger:            log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		History:        historyStore,
	}

	return &Container{
		AskService:     askService,
		DoctorService:  doctorService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Classifier:     classifier,
		Executor:       localExecutor,
		HistoryStore:   historyStore,
		CacheStore:     cacheStore,
		Logger:         log,
	}, nil
}
