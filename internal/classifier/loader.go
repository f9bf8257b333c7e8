package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// RulesFile represents a YAML rules file
type RulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules loads rules from a YAML file or from every YAML file in a directory.
// Files in a directory are read in lexical order and their rules concatenated.
func LoadRules(path string) ([]Rule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat rules path: %w", err)
	}

	if !info.IsDir() {
		return loadFile(path)
	}

	var files []string
	err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		// Skip directories and non-YAML files
		if fi.IsDir() || (filepath.Ext(p) != ".yaml" && filepath.Ext(p) != ".yml") {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var rules []Rule
	for _, f := range files {
		loaded, err := loadFile(f)
		if err != nil {
			return nil, err
		}
		rules = append(rules, loaded...)
	}
	return rules, nil
}

// loadFile loads rules from a single YAML file
func loadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rf.Rules, nil
}
