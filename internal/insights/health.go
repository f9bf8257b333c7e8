package insights

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

const (
	baseHealth = 50.0
	oneGB      = 1_000_000_000
)

// Root markers, checked in order; the first existing path is kept as evidence
var (
	readmeMarkers  = []string{"README.md", "README.txt", "README"}
	licenseMarkers = []string{"LICENSE", "LICENSE.txt", "LICENSE.md"}
	gitMarkers     = []string{".git"}
	ciMarkers      = []string{".github", ".gitlab-ci.yml", "Jenkinsfile", ".travis.yml", "circle.yml"}
)

// Package manager files that count toward health
var healthPackageFiles = map[string]bool{
	"package.json":     true,
	"requirements.txt": true,
	"Cargo.toml":       true,
	"setup.py":         true,
	"go.mod":           true,
	"pom.xml":          true,
}

// HealthInput carries the scan facts the health score depends on
type HealthInput struct {
	Root              string
	Files             []models.FileRecord
	InaccessibleCount int
	MalformedCount    int
	TotalSizeBytes    int64
}

// Health checks root markers and scores the project from 0 to 100
func (a *Analyzer) Health(in HealthInput) models.HealthReport {
	report := models.HealthReport{Evidence: make(map[string]string)}

	markers := []struct {
		name  string
		paths []string
		flag  *bool
		bonus float64
	}{
		{"readme", readmeMarkers, &report.HasReadme, 15},
		{"license", licenseMarkers, &report.HasLicense, 10},
		{"git", gitMarkers, &report.HasGit, 10},
		{"ci", ciMarkers, &report.HasCI, 15},
	}

	score := baseHealth
	for _, m := range markers {
		for _, p := range m.paths {
			if _, err := os.Stat(filepath.Join(in.Root, p)); err == nil {
				*m.flag = true
				report.Evidence[m.name] = p
				score += m.bonus
				break
			}
		}
	}

	var hasPackageManager, hasDocs bool
	for i := range in.Files {
		name := in.Files[i].Name
		if healthPackageFiles[name] && !hasPackageManager {
			hasPackageManager = true
			report.Evidence["package_manager"] = in.Files[i].RelativePath
		}
		if !hasDocs && strings.HasPrefix(strings.ToLower(name), "readme") {
			hasDocs = true
			report.Evidence["documentation"] = in.Files[i].RelativePath
		}
	}
	if hasPackageManager {
		score += 10
	}
	if hasDocs {
		score += 10
	}

	switch n := len(in.Files); {
	case n > 5:
		score += 5
	case n < 3:
		score -= 15
	}

	if in.InaccessibleCount > 10 {
		score -= 20
	}
	if in.MalformedCount > 5 {
		score -= 15
	}
	if in.TotalSizeBytes > oneGB {
		score -= 10
	}

	report.Score = max(0, min(100, score))

	if report.HasGit {
		report.GitBranch, report.GitHead = a.gitInfo(in.Root)
	}

	return report
}

// gitInfo reads the current branch and short HEAD hash of the repository at root
func (a *Analyzer) gitInfo(root string) (branch, head string) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		a.logger.Debug("Cannot open git repository", zap.String("root", root), zap.Error(err))
		return "", ""
	}

	ref, err := repo.Head()
	if err != nil {
		// Unborn branch in a fresh repository
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			a.logger.Debug("Cannot resolve git HEAD", zap.Error(err))
		}
		return "", ""
	}

	if ref.Name().IsBranch() {
		branch = ref.Name().Short()
	}
	head = ref.Hash().String()
	if len(head) > 7 {
		head = head[:7]
	}
	return branch, head
}
