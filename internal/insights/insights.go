package insights

import (
	"github.com/IvanShishkin/treelens/pkg/models"
	"go.uber.org/zap"
)

// Input is everything the project-level analysis looks at
type Input struct {
	Root              string
	Files             []models.FileRecord
	InaccessibleCount int
	MalformedCount    int
	TotalSizeBytes    int64
	ExtensionCounts   map[string]int
	DuplicateGroups   []models.DuplicateGroup
	VersionClusters   []models.VersionCluster
	EmptyDirectories  []string
}

// Analyzer derives whole-project insights from analyzer outputs
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates a new insights analyzer
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze builds ProjectInsights
func (a *Analyzer) Analyze(in Input) models.ProjectInsights {
	result := models.ProjectInsights{
		ProjectType: DetectProjectType(in.Files),
		TechStack:   DetectTechStack(in.Files),
		Health: a.Health(HealthInput{
			Root:              in.Root,
			Files:             in.Files,
			InaccessibleCount: in.InaccessibleCount,
			MalformedCount:    in.MalformedCount,
			TotalSizeBytes:    in.TotalSizeBytes,
		}),
		Consolidation: Consolidation(ConsolidationInput{
			Files:            in.Files,
			DuplicateGroups:  in.DuplicateGroups,
			VersionClusters:  in.VersionClusters,
			EmptyDirectories: in.EmptyDirectories,
		}),
		ShannonDiversity: ShannonDiversity(in.ExtensionCounts),
	}

	a.logger.Debug("Project insights ready",
		zap.String("project_type", result.ProjectType),
		zap.Float64("health", result.Health.Score),
		zap.Int("hints", len(result.Consolidation)))

	return result
}
