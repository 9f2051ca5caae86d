package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// VenueInfos contains a mapping of venue type name to venue type info.
type VenueInfos map[string]VenueTypeInfo

// VenueTypeInfo describes one venue type the exchange is willing to trade.
// Disabled types remain in the taxonomy for conversion purposes but are
// rejected when a filter asks for them explicitly.
type VenueTypeInfo struct {
	Enabled     bool            `yaml:"enabled"`
	Maintainer  *MaintainerInfo `yaml:"maintainer"`
	Description string          `yaml:"description"`
}

// MaintainerInfo specifies the support email address for a venue type.
type MaintainerInfo struct {
	Email string `yaml:"email"`
}

// LoadVenueInfoFromFile parses the venue-type info yaml asset.
func LoadVenueInfoFromFile(path string) (VenueInfos, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading venue info file %s: %v", path, err)
	}

	var infos VenueInfos
	if err := yaml.Unmarshal(data, &infos); err != nil {
		return nil, fmt.Errorf("error parsing venue info file %s: %v", path, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("venue info file %s defines no venue types", path)
	}
	return infos, nil
}

// Known reports whether a venue type is defined at all.
func (infos VenueInfos) Known(venueType string) bool {
	_, ok := infos[venueType]
	return ok
}

// Enabled reports whether a venue type is defined and tradeable.
func (infos VenueInfos) Enabled(venueType string) bool {
	info, ok := infos[venueType]
	return ok && info.Enabled
}
