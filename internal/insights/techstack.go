package insights

import (
	"math"
	"sort"

	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/alecthomas/chroma/v2/lexers"
)

// languageByExt is used when chroma has no lexer for a file name
var languageByExt = map[string]string{
	"py":    "Python",
	"js":    "JavaScript",
	"ts":    "TypeScript",
	"jsx":   "React",
	"tsx":   "React TypeScript",
	"swift": "Swift",
	"java":  "Java",
	"go":    "Go",
	"rs":    "Rust",
	"rb":    "Ruby",
	"php":   "PHP",
	"cs":    "C#",
	"cpp":   "C++",
	"c":     "C",
}

// Lexers that say nothing about the language of a project
var ignoredLexers = map[string]bool{
	"plaintext": true,
	"Text":      true,
}

// packageIndicators maps marker files to the package manager they imply
var packageIndicators = []struct {
	file string
	name string
}{
	{"package.json", "Node.js/npm"},
	{"requirements.txt", "Python/pip"},
	{"Pipfile", "Python/Pipenv"},
	{"Cargo.toml", "Rust/Cargo"},
	{"go.mod", "Go modules"},
	{"Gemfile", "Ruby/Bundler"},
	{"composer.json", "PHP/Composer"},
	{"pom.xml", "Java/Maven"},
	{"build.gradle", "Java/Gradle"},
}

// projectTypes are checked against root-level files in order
var projectTypes = []struct {
	files       []string
	projectType string
}{
	{[]string{"package.json"}, "web"},
	{[]string{"requirements.txt", "setup.py"}, "python"},
	{[]string{"Cargo.toml"}, "rust"},
	{[]string{"go.mod"}, "go"},
	{[]string{"pom.xml"}, "java"},
}

// DetectLanguage returns the language of a file or "" when unknown
func DetectLanguage(f *models.FileRecord) string {
	if lexer := lexers.Match(f.Name); lexer != nil {
		if name := lexer.Config().Name; !ignoredLexers[name] {
			return name
		}
	}
	return languageByExt[f.Extension]
}

// DetectTechStack counts languages and package manager indicators
func DetectTechStack(files []models.FileRecord) models.TechStack {
	stack := models.TechStack{
		Languages:            make(map[string]int),
		LanguageDistribution: make(map[string]float64),
		PackageManagers:      []models.Indicator{},
	}

	found := make(map[string][]string)
	for i := range files {
		f := &files[i]
		if lang := DetectLanguage(f); lang != "" {
			stack.Languages[lang]++
		}
		found[f.Name] = append(found[f.Name], f.RelativePath)
	}

	for _, ind := range packageIndicators {
		paths, ok := found[ind.file]
		if !ok {
			continue
		}
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)
		stack.PackageManagers = append(stack.PackageManagers, models.Indicator{
			Name:  ind.name,
			File:  ind.file,
			Paths: sorted,
		})
	}

	total := 0
	for _, n := range stack.Languages {
		total += n
	}
	if total > 0 {
		for lang, n := range stack.Languages {
			stack.LanguageDistribution[lang] = math.Round(float64(n)/float64(total)*1000) / 10
		}
	}

	return stack
}

// DetectProjectType infers the project type from root markers, then extensions
func DetectProjectType(files []models.FileRecord) string {
	root := make(map[string]bool)
	exts := make(map[string]bool)
	for i := range files {
		if files[i].RelativePath == files[i].Name {
			root[files[i].Name] = true
		}
		exts[files[i].Extension] = true
	}

	for _, pt := range projectTypes {
		for _, name := range pt.files {
			if root[name] {
				return pt.projectType
			}
		}
	}

	switch {
	case exts["cpp"] || exts["cc"]:
		return "cpp"
	case exts["ts"] || exts["tsx"]:
		return "typescript"
	case exts["js"] || exts["jsx"]:
		return "javascript"
	}
	return "other"
}
