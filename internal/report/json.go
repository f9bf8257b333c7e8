package report

import (
	"encoding/json"
	"os"

	"github.com/IvanShishkin/treelens/pkg/models"
)

// generateJSON generates a JSON report
func (g *Generator) generateJSON(env *models.ReportEnvelope, outputFile string) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
