// Package ask orchestrates the non-interactive query lifecycle: translate a
// natural-language prompt into a command, classify it, and apply the policy
// gate for the requested mode.
package ask

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/ports"
	"github.com/quiverlabs/nlsh/internal/safety"
)

// Service orchestrates the ask lifecycle end-to-end.
type Service struct {
	ConfigProvider    ports.ConfigProvider
	TranslatorFactory ports.TranslatorFactory
	Classifier        ports.Classifier
	Executor          ports.CommandExecutor
	Clipboard         ports.Clipboard
	History           ports.HistoryRepository
	Cache             ports.CacheRepository
	Logger            ports.Logger
}

// Run processes a single natural-language prompt.
func (s *Service) Run(req domain.AskRequest) (domain.AskResponse, error) {
	if s.ConfigProvider == nil || s.TranslatorFactory == nil || s.Classifier == nil ||
		s.Executor == nil || s.Logger == nil {
		return domain.AskResponse{}, errors.New("ask.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.AskResponse{}, fmt.Errorf("load config: %w", err)
	}

	modelDef, err := pickModel(cfg, req.ModelOverride)
	if err != nil {
		return domain.AskResponse{}, err
	}

	translation, fromCache, err := s.translate(ctx, cfg, modelDef, req)
	if err != nil {
		return domain.AskResponse{}, err
	}

	resp := domain.AskResponse{
		Command:         translation.Command,
		NaturalLanguage: req.Prompt,
		Reasoning:       translation.Reasoning,
		ModelUsed:       modelDef.Name,
		FromCache:       fromCache,
	}

	if req.CopyToClipboard && s.Clipboard != nil && s.Clipboard.Enabled() {
		if err := s.Clipboard.Copy(translation.Command); err != nil {
			s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		}
	}

	verdict := s.Classifier.Classify(translation.Command, cfg.SafetyConfig())
	resp.Verdict = verdict

	result, err := s.gate(ctx, cfg, req.Mode, translation.Command, verdict)
	resp.ExecutionResult = result
	s.record(cfg, req.Prompt, resp, result, err)
	return resp, err
}

// Suggest translates a prompt without applying the policy gate. Interactive
// sessions use it and feed the result through their own state machine.
func (s *Service) Suggest(ctx context.Context, prompt, modelOverride string, noCache bool) (domain.AskResponse, error) {
	if s.ConfigProvider == nil || s.TranslatorFactory == nil {
		return domain.AskResponse{}, errors.New("ask.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.AskResponse{}, fmt.Errorf("load config: %w", err)
	}
	modelDef, err := pickModel(cfg, modelOverride)
	if err != nil {
		return domain.AskResponse{}, err
	}
	translation, fromCache, err := s.translate(ctx, cfg, modelDef, domain.AskRequest{Prompt: prompt, NoCache: noCache})
	if err != nil {
		return domain.AskResponse{}, err
	}
	return domain.AskResponse{
		Command:         translation.Command,
		NaturalLanguage: prompt,
		Reasoning:       translation.Reasoning,
		ModelUsed:       modelDef.Name,
		FromCache:       fromCache,
	}, nil
}

// Check classifies a literal command without translation, applying the same
// gate as translated commands.
func (s *Service) Check(ctx context.Context, command string, mode domain.GateMode) (domain.AskResponse, error) {
	if s.ConfigProvider == nil || s.Classifier == nil || s.Executor == nil {
		return domain.AskResponse{}, errors.New("ask.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.AskResponse{}, fmt.Errorf("load config: %w", err)
	}

	verdict := s.Classifier.Classify(command, cfg.SafetyConfig())
	resp := domain.AskResponse{Command: command, Verdict: verdict}

	result, err := s.gate(ctx, cfg, mode, command, verdict)
	resp.ExecutionResult = result
	s.record(cfg, "", resp, result, err)
	return resp, err
}

// gate applies the policy decision for the requested mode. It returns the
// execution result when the command ran, a RefusalError when the gate said
// no, and the adapter's error when execution itself failed.
func (s *Service) gate(ctx context.Context, cfg domain.Config, mode domain.GateMode, command string, verdict domain.SafetyVerdict) (*domain.ExecutionResult, error) {
	switch safety.Decide(verdict, mode) {
	case safety.DecisionRefuse:
		return nil, &safety.RefusalError{Command: command, Verdict: verdict}
	case safety.DecisionExecute:
		if mode == domain.ModeExecute {
			result, err := s.Executor.Execute(ctx, command)
			if err != nil {
				return &result, err
			}
			if result.ExitCode != 0 {
				return &result, fmt.Errorf("command exited with code %d", result.ExitCode)
			}
			return &result, nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}

func (s *Service) translate(ctx context.Context, cfg domain.Config, modelDef domain.ModelDefinition, req domain.AskRequest) (ports.Translation, bool, error) {
	key := cacheKey(modelDef.Name, req.Prompt)
	if s.Cache != nil && cfg.Cache.Enabled && !req.NoCache {
		if entry, ok, err := s.Cache.Get(key); err == nil && ok {
			return ports.Translation{Command: entry.Command, Reasoning: entry.Reasoning}, true, nil
		}
	}

	translator, err := s.TranslatorFactory.ForModel(modelDef)
	if err != nil {
		return ports.Translation{}, false, fmt.Errorf("translator init: %w", err)
	}

	s.Logger.Info("calling translator", map[string]interface{}{
		"translator": translator.Name(),
		"model":      modelDef.ModelID,
	})

	workdir, _ := os.Getwd()
	translation, err := translator.Translate(ctx, ports.TranslateRequest{
		Prompt:     req.Prompt,
		WorkingDir: workdir,
		Model:      modelDef,
		Debug:      req.Debug,
	})
	if err != nil {
		return ports.Translation{}, false, fmt.Errorf("translate: %w", err)
	}

	if s.Cache != nil && cfg.Cache.Enabled && translation.Command != "" {
		if err := s.Cache.Set(domain.CacheEntry{
			Key:       key,
			Command:   translation.Command,
			Reasoning: translation.Reasoning,
			Model:     modelDef.Name,
			CreatedAt: time.Now().Unix(),
		}); err != nil {
			s.Logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return translation, false, nil
}

func (s *Service) record(cfg domain.Config, prompt string, resp domain.AskResponse, result *domain.ExecutionResult, runErr error) {
	if s.History == nil || !cfg.History.Enabled {
		return
	}
	rec := domain.HistoryRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Prompt:    prompt,
		Command:   resp.Command,
		Model:     resp.ModelUsed,
		Severity:  resp.Verdict.Severity,
		Dangerous: resp.Verdict.Dangerous,
		State:     domain.StateProposed,
	}
	if result != nil {
		rec.ExitCode = result.ExitCode
		rec.DurationMS = result.DurationMS
		if runErr == nil && result.ExitCode == 0 {
			rec.State = domain.StateExecuted
		} else {
			rec.State = domain.StateFailed
		}
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func pickModel(cfg domain.Config, override string) (domain.ModelDefinition, error) {
	name := override
	if name == "" {
		name = cfg.Preferences.DefaultModel
	}
	if name == "" && len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	if model, ok := cfg.FindModelByName(name); ok {
		return model, nil
	}
	return domain.ModelDefinition{}, fmt.Errorf("model %s not configured", name)
}

func cacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}
