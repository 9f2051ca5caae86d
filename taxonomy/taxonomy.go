package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultParent is used for screen categories the taxonomy does not know.
const DefaultParent = "outdoor"

// Taxonomy is the venue classification table: marketplace category ids mapped
// to standardized parent categories, and parent / parent+child pairs mapped to
// numeric OpenOOH-style codes. It is loaded once at startup and read-only
// afterwards, so it is safe to share across goroutines.
type Taxonomy struct {
	version     string
	parents     map[string]string
	parentCodes map[string]int
	childCodes  map[string]int
}

type taxonomyFile struct {
	Version     string            `json:"version"`
	Parents     map[string]string `json:"parents"`
	ParentCodes map[string]int    `json:"parent_codes"`
	ChildCodes  map[string]int    `json:"child_codes"`
}

// LoadFromDirectory eagerly reads the taxonomy assets from a directory. Each
// "{name}.json" file is a complete taxonomy with a version string; the file
// with the highest version wins, which lets a new version ship next to the
// old one during a rollout.
func LoadFromDirectory(directory string) (*Taxonomy, error) {
	fileInfos, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy directory %s: %v", directory, err)
	}

	var chosen *taxonomyFile
	for _, fileInfo := range fileInfos {
		if fileInfo.IsDir() || !strings.HasSuffix(fileInfo.Name(), ".json") {
			continue
		}
		fileData, err := os.ReadFile(filepath.Join(directory, fileInfo.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read taxonomy file %s: %v", fileInfo.Name(), err)
		}
		parsed := &taxonomyFile{}
		if err := json.Unmarshal(fileData, parsed); err != nil {
			return nil, fmt.Errorf("invalid taxonomy file %s: %v", fileInfo.Name(), err)
		}
		if err := validate(parsed, fileInfo.Name()); err != nil {
			return nil, err
		}
		if chosen == nil || parsed.Version > chosen.Version {
			chosen = parsed
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("taxonomy directory %s contains no taxonomy files", directory)
	}

	return &Taxonomy{
		version:     chosen.Version,
		parents:     chosen.Parents,
		parentCodes: chosen.ParentCodes,
		childCodes:  chosen.ChildCodes,
	}, nil
}

func validate(file *taxonomyFile, name string) error {
	if file.Version == "" {
		return fmt.Errorf("taxonomy file %s is missing a version", name)
	}
	if len(file.Parents) == 0 {
		return fmt.Errorf("taxonomy file %s defines no category parents", name)
	}
	if _, ok := file.ParentCodes[DefaultParent]; !ok {
		return fmt.Errorf("taxonomy file %s must define a code for the default parent %q", name, DefaultParent)
	}
	for category, parent := range file.Parents {
		if _, ok := file.ParentCodes[parent]; !ok {
			return fmt.Errorf("taxonomy file %s maps category %q to parent %q which has no code", name, category, parent)
		}
	}
	return nil
}

// Version returns the version string of the loaded asset.
func (t *Taxonomy) Version() string {
	return t.version
}

// Parent resolves a marketplace category id to its standardized parent
// category. Unrecognized categories fall back to DefaultParent.
func (t *Taxonomy) Parent(categoryID string) string {
	if parent, ok := t.parents[categoryID]; ok {
		return parent
	}
	return DefaultParent
}

// ParentCode returns the numeric code for a parent category.
func (t *Taxonomy) ParentCode(parent string) int {
	return t.parentCodes[parent]
}

// ChildCode returns the numeric code for a parent+category pair. The second
// return is false when the pair is unmapped, in which case callers must omit
// the child code rather than default it.
func (t *Taxonomy) ChildCode(parent, categoryID string) (int, bool) {
	code, ok := t.childCodes[parent+"."+categoryID]
	return code, ok
}
