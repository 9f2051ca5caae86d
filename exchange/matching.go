package exchange

import (
	"strings"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/util/geoutil"
)

// matchVenues runs the filter pipeline. Every stage narrows the candidate
// set and only applies when its filter field is present, so an empty filter
// returns all candidates unchanged.
func matchVenues(filter openrtb_ext.DOOHVenueFilter, candidates []openrtb_ext.DOOHScreen) []openrtb_ext.DOOHScreen {
	matched := candidates
	if len(filter.VenueTypes) > 0 {
		matched = filterVenueTypes(matched, filter.VenueTypes)
	}
	if filter.Geo != nil {
		if len(filter.Geo.Cities) > 0 {
			matched = filterCities(matched, filter.Geo.Cities)
		}
		if len(filter.Geo.Points) > 0 {
			matched = filterRadius(matched, filter.Geo.Points, filter.Geo.RadiusKM)
		}
	}
	if filter.MinDailyImpressions != nil {
		matched = filterMinImpressions(matched, *filter.MinDailyImpressions)
	}
	if filter.MaxCPM != nil {
		matched = filterMaxCPM(matched, *filter.MaxCPM)
	}
	return matched
}

func filterVenueTypes(venues []openrtb_ext.DOOHScreen, venueTypes []string) []openrtb_ext.DOOHScreen {
	wanted := make(map[string]struct{}, len(venueTypes))
	for _, venueType := range venueTypes {
		wanted[venueType] = struct{}{}
	}

	kept := make([]openrtb_ext.DOOHScreen, 0, len(venues))
	for _, venue := range venues {
		if _, ok := wanted[venue.VenueType]; ok {
			kept = append(kept, venue)
		}
	}
	return kept
}

// filterCities keeps venues whose address contains any of the listed city
// names, case-insensitively.
func filterCities(venues []openrtb_ext.DOOHScreen, cities []string) []openrtb_ext.DOOHScreen {
	kept := make([]openrtb_ext.DOOHScreen, 0, len(venues))
	for _, venue := range venues {
		address := strings.ToLower(venue.Location.Address)
		for _, city := range cities {
			if strings.Contains(address, strings.ToLower(city)) {
				kept = append(kept, venue)
				break
			}
		}
	}
	return kept
}

// filterRadius keeps venues within radiusKm of any reference point.
func filterRadius(venues []openrtb_ext.DOOHScreen, points []openrtb_ext.DOOHGeoPoint, radiusKm float64) []openrtb_ext.DOOHScreen {
	kept := make([]openrtb_ext.DOOHScreen, 0, len(venues))
	for _, venue := range venues {
		for _, point := range points {
			if geoutil.Distance(point.Lat, point.Lon, venue.Location.Lat, venue.Location.Lon) <= radiusKm {
				kept = append(kept, venue)
				break
			}
		}
	}
	return kept
}

func filterMinImpressions(venues []openrtb_ext.DOOHScreen, minImpressions int64) []openrtb_ext.DOOHScreen {
	kept := make([]openrtb_ext.DOOHScreen, 0, len(venues))
	for _, venue := range venues {
		if venue.Audience.DailyImpressions >= minImpressions {
			kept = append(kept, venue)
		}
	}
	return kept
}

func filterMaxCPM(venues []openrtb_ext.DOOHScreen, maxCPM float64) []openrtb_ext.DOOHScreen {
	kept := make([]openrtb_ext.DOOHScreen, 0, len(venues))
	for _, venue := range venues {
		if venue.Pricing.BaseCPM <= maxCPM {
			kept = append(kept, venue)
		}
	}
	return kept
}

// totalInventory sums the available spots across every availability window
// of every matched venue.
func totalInventory(venues []openrtb_ext.DOOHScreen) int {
	total := 0
	for _, venue := range venues {
		for _, window := range venue.Availability {
			total += window.AvailableSpots
		}
	}
	return total
}

// averageCPM is the arithmetic mean of the matched venues' base CPMs, and 0
// (never NaN) when nothing matched.
func averageCPM(venues []openrtb_ext.DOOHScreen) float64 {
	if len(venues) == 0 {
		return 0
	}
	sum := 0.0
	for _, venue := range venues {
		sum += venue.Pricing.BaseCPM
	}
	return sum / float64(len(venues))
}
