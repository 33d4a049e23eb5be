// Package doctor runs environment diagnostics for the CLI doctor command.
package doctor

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/infrastructure/executor"
	"github.com/quiverlabs/nlsh/internal/ports"
	"github.com/quiverlabs/nlsh/internal/safety"
)

// Service aggregates health checks over the wired adapters.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Clipboard      ports.Clipboard
	History        ports.HistoryRepository
}

// Run executes all checks and returns the aggregate report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var report domain.HealthReport

	report.Checks = append(report.Checks, s.checkConfig(ctx))
	report.Checks = append(report.Checks, s.checkCatalog(ctx))
	report.Checks = append(report.Checks, s.checkShell(ctx))
	report.Checks = append(report.Checks, s.checkClipboard())
	report.Checks = append(report.Checks, s.checkHistory())

	for _, check := range report.Checks {
		if check.Status == domain.HealthFail {
			return report, fmt.Errorf("diagnostics found failures")
		}
	}
	return report, nil
}

func (s *Service) checkConfig(ctx context.Context) domain.HealthCheck {
	check := domain.HealthCheck{Name: "configuration"}
	if s.ConfigProvider == nil {
		check.Status = domain.HealthFail
		check.Details = "config provider not wired"
		return check
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		check.Status = domain.HealthFail
		check.Details = err.Error()
		return check
	}
	check.Status = domain.HealthOK
	check.Details = fmt.Sprintf("safety level %s, %d models", domain.ParseSafetyLevel(cfg.Safety.Level), len(cfg.Models))
	return check
}

func (s *Service) checkCatalog(ctx context.Context) domain.HealthCheck {
	check := domain.HealthCheck{Name: "pattern catalog"}
	path := ""
	if s.ConfigProvider != nil {
		if cfg, err := s.ConfigProvider.Load(ctx); err == nil {
			path = cfg.Safety.RulesFile
		}
	}
	if _, err := safety.NewCatalog(path); err != nil {
		check.Status = domain.HealthFail
		check.Details = err.Error()
		return check
	}
	check.Status = domain.HealthOK
	check.Details = "all rules compile"
	return check
}

func (s *Service) checkShell(ctx context.Context) domain.HealthCheck {
	check := domain.HealthCheck{Name: "shell"}
	configured := ""
	if s.ConfigProvider != nil {
		if cfg, err := s.ConfigProvider.Load(ctx); err == nil {
			configured = cfg.GetExecutionShell()
		}
	}
	shell := executor.ResolveShell(configured)
	if _, err := exec.LookPath(shell); err != nil {
		check.Status = domain.HealthFail
		check.Details = fmt.Sprintf("%s not found", shell)
		return check
	}
	check.Status = domain.HealthOK
	check.Details = shell
	return check
}

func (s *Service) checkClipboard() domain.HealthCheck {
	check := domain.HealthCheck{Name: "clipboard"}
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		check.Status = domain.HealthWarn
		check.Details = "clipboard integration unavailable on this platform"
		return check
	}
	check.Status = domain.HealthOK
	check.Details = "available"
	return check
}

func (s *Service) checkHistory() domain.HealthCheck {
	check := domain.HealthCheck{Name: "history store"}
	if s.History == nil {
		check.Status = domain.HealthWarn
		check.Details = "history disabled"
		return check
	}
	check.Status = domain.HealthOK
	check.Details = s.History.Path()
	return check
}
