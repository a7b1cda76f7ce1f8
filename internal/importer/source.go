package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// SheetData is the YAML document accepted by the importer:
//
//	sheets:
//	  - id: 7
//	    stats: ".st str50dex60san55"
//	    replace: true
type SheetData struct {
	Sheets []SheetSpec `yaml:"sheets"`
}

// SheetSpec describes one character sheet to write.
type SheetSpec struct {
	ID int `yaml:"id"`
	// Stats is a stat line in upload form. The ".st " prefix may be omitted.
	Stats string `yaml:"stats"`
	// Replace discards any existing sheet instead of merging into it.
	Replace bool `yaml:"replace,omitempty"`
}

// Source loads sheet specs from a path.
//
// Postcondition: returns at least one SheetSpec, or a non-nil error.
type Source interface {
	Load(path string) ([]SheetSpec, error)
}

// YAMLSource reads SheetData documents from a file, or from every .yaml and
// .yml file in a directory in name order.
type YAMLSource struct{}

// NewYAMLSource returns a YAMLSource.
func NewYAMLSource() YAMLSource { return YAMLSource{} }

// Load implements Source.
func (YAMLSource) Load(path string) ([]SheetSpec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	files := []string{path}
	if info.IsDir() {
		if files, err = yamlFiles(path); err != nil {
			return nil, err
		}
	}

	var specs []SheetSpec
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		var doc SheetData
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		specs = append(specs, doc.Sheets...)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}
	return specs, nil
}

func yamlFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		m, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, m...)
	}
	sort.Strings(files)
	return files, nil
}
