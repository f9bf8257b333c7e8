package ai

import (
	"strings"
)

// Commentary is the parsed LLM answer for one scan
type Commentary struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Model           string   `json:"model"`
	TokensUsed      int      `json:"tokens_used"`
}

// Text renders the commentary as plain text for reports
func (c *Commentary) Text() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(c.Summary))
	if len(c.Recommendations) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		for i, rec := range c.Recommendations {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("- " + strings.TrimSpace(rec))
		}
	}
	return sb.String()
}

// CostEstimate represents the estimated API cost of one summary request
type CostEstimate struct {
	Model            string
	EstimatedTokens  int
	EstimatedCostUSD float64
}

// TokenPricing contains pricing per million tokens for each model
type TokenPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// ModelPricing returns pricing for a model
func ModelPricing(model string) TokenPricing {
	switch model {
	case "haiku", "claude-3-haiku", "claude-3-5-haiku-latest":
		return TokenPricing{InputPerMillion: 0.25, OutputPerMillion: 1.25}
	case "opus", "claude-3-opus", "claude-opus-4-20250514":
		return TokenPricing{InputPerMillion: 15.0, OutputPerMillion: 75.0}
	default: // sonnet
		return TokenPricing{InputPerMillion: 3.0, OutputPerMillion: 15.0}
	}
}

// EstimateCost approximates the cost of sending a prompt of promptChars characters
func EstimateCost(model string, promptChars int) *CostEstimate {
	const (
		charsPerToken = 4
		systemTokens  = 350
		outputTokens  = 600
	)

	input := promptChars/charsPerToken + systemTokens
	pricing := ModelPricing(model)

	return &CostEstimate{
		Model:           model,
		EstimatedTokens: input + outputTokens,
		EstimatedCostUSD: float64(input)/1_000_000*pricing.InputPerMillion +
			float64(outputTokens)/1_000_000*pricing.OutputPerMillion,
	}
}
