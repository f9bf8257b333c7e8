package ai

import (
	"context"
	"fmt"

	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/pkg/models"
	"go.uber.org/zap"
)

// Summarizer turns a finished report into human commentary
type Summarizer interface {
	Summarize(ctx context.Context, report *models.ScanReport) (string, error)
}

// Noop is the Summarizer used when AI commentary is disabled
type Noop struct{}

// Summarize returns no commentary
func (Noop) Summarize(context.Context, *models.ScanReport) (string, error) {
	return "", nil
}

// AIProgressCallback is called to report AI analysis progress
type AIProgressCallback func(current, total int, message string)

// Analyzer asks the Anthropic API for commentary on a scan digest
type Analyzer struct {
	client           *Client
	config           *config.AIConfig
	logger           *zap.Logger
	progressCallback AIProgressCallback
}

// NewSummarizer returns Noop when AI is disabled, otherwise an Analyzer
func NewSummarizer(cfg *config.AIConfig, logger *zap.Logger) (Summarizer, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	return NewAnalyzer(cfg, logger)
}

// NewAnalyzer creates a new AI analyzer
func NewAnalyzer(cfg *config.AIConfig, logger *zap.Logger) (*Analyzer, error) {
	client, err := NewClient(cfg.Model, cfg.APIToken, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// SetProgressCallback sets the progress callback function
func (a *Analyzer) SetProgressCallback(cb AIProgressCallback) {
	a.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (a *Analyzer) reportProgress(current, total int, message string) {
	if a.progressCallback != nil {
		a.progressCallback(current, total, message)
	}
}

// Summarize sends the report digest to the model and returns plain-text commentary
func (a *Analyzer) Summarize(ctx context.Context, report *models.ScanReport) (string, error) {
	prompt, err := BuildSummaryPrompt(BuildDigest(report), a.config.Language)
	if err != nil {
		return "", err
	}

	estimate := EstimateCost(a.client.GetModel(), len(prompt))
	a.logger.Info("Requesting AI commentary",
		zap.String("model", a.client.GetModel()),
		zap.String("language", GetLanguageName(a.config.Language)),
		zap.Int("estimated_tokens", estimate.EstimatedTokens),
		zap.Float64("estimated_cost_usd", estimate.EstimatedCostUSD))

	a.reportProgress(0, 1, fmt.Sprintf("Asking %s for commentary...", a.client.GetModel()))
	commentary, err := a.client.Comment(ctx, prompt)
	if err != nil {
		return "", err
	}
	a.reportProgress(1, 1, "AI commentary received")

	a.logger.Debug("AI commentary received",
		zap.Int("tokens", commentary.TokensUsed),
		zap.Int("recommendations", len(commentary.Recommendations)))

	return commentary.Text(), nil
}
