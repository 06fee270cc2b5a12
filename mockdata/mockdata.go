package mockdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-lifeline/types"
)

// Category-specific report files shipped with the repo for demo ingestion.
var dataFiles = map[string]string{
	"floods":      "flood-alerts.json",
	"earthquakes": "earthquake-alerts.json",
	"social":      "social-media-alerts.json",
}

const CategoryAll = "all"

// ValidCategory reports whether c names a loadable data set.
func ValidCategory(c string) bool {
	if c == CategoryAll {
		return true
	}
	_, ok := dataFiles[c]
	return ok
}

// Loader reads raw mock reports from a directory of category JSON files.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load returns the reports for one category, or every category for "all".
func (l *Loader) Load(category string) ([]types.MockDisaster, error) {
	if category == CategoryAll {
		var all []types.MockDisaster
		for _, c := range []string{"floods", "earthquakes", "social"} {
			reports, err := l.loadFile(c)
			if err != nil {
				return nil, err
			}
			all = append(all, reports...)
		}
		return all, nil
	}

	if !ValidCategory(category) {
		return nil, types.ValidationError("invalid category %q", category)
	}
	return l.loadFile(category)
}

func (l *Loader) loadFile(category string) ([]types.MockDisaster, error) {
	path := filepath.Join(l.dir, dataFiles[category])
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var reports []types.MockDisaster
	if err := json.Unmarshal(content, &reports); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return reports, nil
}

// CategoryInfo describes what a category file contains.
type CategoryInfo struct {
	Count     int      `json:"count"`
	Locations []string `json:"locations"`
}

// Available summarizes every category for the discovery endpoint.
func (l *Loader) Available() (map[string]CategoryInfo, int, error) {
	out := make(map[string]CategoryInfo, len(dataFiles))
	total := 0
	for category := range dataFiles {
		reports, err := l.loadFile(category)
		if err != nil {
			return nil, 0, err
		}
		info := CategoryInfo{Count: len(reports)}
		for _, r := range reports {
			info.Locations = append(info.Locations, r.Location.Name)
		}
		out[category] = info
		total += len(reports)
	}
	return out, total, nil
}
