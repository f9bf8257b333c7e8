package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LanguageInstruction returns the language instruction for prompts
func LanguageInstruction(lang string) string {
	switch lang {
	case "ru":
		return "\n\nIMPORTANT: Respond in Russian (Русский). Both summary and recommendations must be in Russian."
	case "es":
		return "\n\nIMPORTANT: Respond in Spanish (Español). Both summary and recommendations must be in Spanish."
	default:
		return "" // English is default, no extra instruction needed
	}
}

// GetLanguageName returns the display name for a language code
func GetLanguageName(lang string) string {
	switch lang {
	case "ru":
		return "Русский"
	case "es":
		return "Español"
	default:
		return "English"
	}
}

// SummarySystemPrompt frames the model as a project-organization reviewer
const SummarySystemPrompt = `You are a senior engineer reviewing how a project directory is organized.
You receive a JSON digest produced by a deterministic scanner: file counts, duplicate groups,
versioned file names, work sessions reconstructed from modification times, naming conventions,
directory purposes, document categories and a health score.

OUTPUT: Valid JSON only, no markdown. Do not escape unicode in strings.
{
  "summary": "3-5 sentences on the state of the project, citing numbers from the digest",
  "recommendations": ["concrete cleanup or organization step", "..."]
}

RULES:
- Only use facts present in the digest. Never invent files or numbers.
- Prioritize wasted space, manual version files and missing project hygiene (README, LICENSE, CI).
- Give at most 5 recommendations, most impactful first.
- If the project looks healthy, say so briefly.`

// BuildSummaryPrompt builds the user prompt from a digest
func BuildSummaryPrompt(d *Digest, lang string) (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode digest: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("## Scan Digest\n\n```json\n")
	sb.Write(data)
	sb.WriteString("\n```\n\n")
	sb.WriteString("Review this project and respond with the JSON object described in your instructions.")
	sb.WriteString(LanguageInstruction(lang))

	return sb.String(), nil
}
