package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/errortypes"
)

// Source knows how to read the screen inventory.
//
// Implementations must be safe for concurrent access by multiple goroutines.
// Callers are expected to share a single instance as much as possible.
// The returned slice and its screens can only be read from, never written to.
type Source interface {
	// GetScreens returns every screen in the inventory, available or not.
	// A failure to read the inventory is reported as
	// *errortypes.SourceUnavailable; an empty inventory is not an error.
	GetScreens(ctx context.Context) ([]Screen, error)
}

// NewFileSource _immediately_ loads screen records from local files.
// These are stored in memory for low-latency reads.
//
// Each "{screen_id}.json" file in the directory holds one Screen. Records
// whose id does not match the file name are rejected at startup so a bad
// deploy fails fast instead of serving mislabeled inventory.
func NewFileSource(directory string) (Source, error) {
	fileInfos, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory directory %s: %v", directory, err)
	}

	screens := make([]Screen, 0, len(fileInfos))
	for _, fileInfo := range fileInfos {
		if fileInfo.IsDir() || !strings.HasSuffix(fileInfo.Name(), ".json") {
			continue
		}
		fileData, err := os.ReadFile(filepath.Join(directory, fileInfo.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory file %s: %v", fileInfo.Name(), err)
		}
		var screen Screen
		if err := json.Unmarshal(fileData, &screen); err != nil {
			return nil, fmt.Errorf("invalid inventory file %s: %v", fileInfo.Name(), err)
		}
		if want := strings.TrimSuffix(fileInfo.Name(), ".json"); screen.ID != want {
			return nil, fmt.Errorf("inventory file %s holds screen id %q", fileInfo.Name(), screen.ID)
		}
		screens = append(screens, screen)
	}

	sort.Slice(screens, func(i, j int) bool { return screens[i].ID < screens[j].ID })
	return &eagerSource{screens: screens}, nil
}

type eagerSource struct {
	screens []Screen
}

func (s *eagerSource) GetScreens(ctx context.Context) ([]Screen, error) {
	if err := ctx.Err(); err != nil {
		return nil, &errortypes.SourceUnavailable{Message: fmt.Sprintf("inventory read aborted: %v", err)}
	}
	return s.screens, nil
}

// AvailableOnly narrows a screen list to the screens currently marked
// available. The input slice is not modified.
func AvailableOnly(screens []Screen) []Screen {
	available := make([]Screen, 0, len(screens))
	for _, screen := range screens {
		if screen.Available {
			available = append(available, screen)
		}
	}
	return available
}
