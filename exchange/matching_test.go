package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
)

func venue(screenID, venueType, address string, lat, lon float64, dailyImps int64, baseCPM float64, spots int) openrtb_ext.DOOHScreen {
	return openrtb_ext.DOOHScreen{
		ScreenID:  screenID,
		VenueID:   "venue_" + screenID,
		VenueType: venueType,
		Location:  openrtb_ext.DOOHLocation{Lat: lat, Lon: lon, Address: address},
		Availability: []openrtb_ext.DOOHAvailability{
			{AvailableSpots: spots, OccupancyRate: 0.75},
		},
		Pricing:  openrtb_ext.DOOHPricing{BaseCPM: baseCPM, Currency: "COP"},
		Audience: openrtb_ext.DOOHAudience{DailyImpressions: dailyImps},
	}
}

func bogotaVenues() []openrtb_ext.DOOHScreen {
	return []openrtb_ext.DOOHScreen{
		venue("s1", "leisure", "Estadio El Campin, Bogota", 4.6459, -74.0776, 45000, 1200, 6),
		venue("s2", "retail", "CC Centro Mayor, Bogota", 4.5725, -74.1231, 28000, 800, 4),
		venue("s3", "outdoor", "Autopista Norte, Bogota", 4.7110, -74.0721, 12000, 400, 4),
	}
}

func TestMatchVenuesEmptyFilter(t *testing.T) {
	matched := matchVenues(openrtb_ext.DOOHVenueFilter{}, bogotaVenues())
	assert.Len(t, matched, 3, "an empty filter keeps every candidate")
}

func TestMatchVenuesMinImpressionsScenario(t *testing.T) {
	filter := openrtb_ext.DOOHVenueFilter{MinDailyImpressions: pointer.Int64(20000)}

	response := matchVenues(filter, bogotaVenues())
	assert.Len(t, response, 2)
	assert.Equal(t, "s1", response[0].ScreenID)
	assert.Equal(t, "s2", response[1].ScreenID)
	assert.Equal(t, (1200.0+800.0)/2, averageCPM(response))
}

func TestMatchVenuesVenueTypes(t *testing.T) {
	filter := openrtb_ext.DOOHVenueFilter{VenueTypes: []string{"retail", "outdoor"}}

	matched := matchVenues(filter, bogotaVenues())
	assert.Len(t, matched, 2)
	assert.Equal(t, "s2", matched[0].ScreenID)
	assert.Equal(t, "s3", matched[1].ScreenID)
}

func TestMatchVenuesCities(t *testing.T) {
	candidates := append(bogotaVenues(),
		venue("s4", "retail", "CC Santafe, Medellin", 6.1972, -75.5749, 30000, 900, 4))

	filter := openrtb_ext.DOOHVenueFilter{
		Geo: &openrtb_ext.DOOHGeoFilter{Cities: []string{"MEDELLIN"}},
	}
	matched := matchVenues(filter, candidates)
	assert.Len(t, matched, 1, "city matching is case-insensitive")
	assert.Equal(t, "s4", matched[0].ScreenID)
}

func TestMatchVenuesRadius(t *testing.T) {
	// s1 is ~1.5 km from the reference point, s2 ~9 km, s3 ~7 km.
	filter := openrtb_ext.DOOHVenueFilter{
		Geo: &openrtb_ext.DOOHGeoFilter{
			Points:   []openrtb_ext.DOOHGeoPoint{{Lat: 4.6533, Lon: -74.0836}},
			RadiusKM: 3,
		},
	}
	matched := matchVenues(filter, bogotaVenues())
	assert.Len(t, matched, 1)
	assert.Equal(t, "s1", matched[0].ScreenID)
}

func TestMatchVenuesCitiesAndRadiusAreBothApplied(t *testing.T) {
	candidates := append(bogotaVenues(),
		venue("s4", "retail", "CC Santafe, Medellin", 6.1972, -75.5749, 30000, 900, 4))

	// The radius covers all of Bogota but the city narrows to Medellin;
	// nothing satisfies both.
	filter := openrtb_ext.DOOHVenueFilter{
		Geo: &openrtb_ext.DOOHGeoFilter{
			Cities:   []string{"Medellin"},
			Points:   []openrtb_ext.DOOHGeoPoint{{Lat: 4.6097, Lon: -74.0817}},
			RadiusKM: 50,
		},
	}
	matched := matchVenues(filter, candidates)
	assert.Empty(t, matched)
}

func TestMatchVenuesMaxCPM(t *testing.T) {
	filter := openrtb_ext.DOOHVenueFilter{MaxCPM: pointer.Float64(800)}

	matched := matchVenues(filter, bogotaVenues())
	assert.Len(t, matched, 2)
	for _, venue := range matched {
		assert.LessOrEqual(t, venue.Pricing.BaseCPM, 800.0)
	}
}

func TestMatchVenuesMonotonicity(t *testing.T) {
	candidates := bogotaVenues()
	base := openrtb_ext.DOOHVenueFilter{VenueTypes: []string{"leisure", "retail", "outdoor"}}

	narrowings := []openrtb_ext.DOOHVenueFilter{
		{VenueTypes: base.VenueTypes, MinDailyImpressions: pointer.Int64(20000)},
		{VenueTypes: base.VenueTypes, MaxCPM: pointer.Float64(900)},
		{VenueTypes: base.VenueTypes, Geo: &openrtb_ext.DOOHGeoFilter{Cities: []string{"Bogota"}}},
		{VenueTypes: []string{"leisure"}},
	}

	baseline := len(matchVenues(base, candidates))
	for _, narrowed := range narrowings {
		assert.LessOrEqual(t, len(matchVenues(narrowed, candidates)), baseline,
			"adding a constraint must never grow the result set")
	}
}

func TestAggregates(t *testing.T) {
	candidates := bogotaVenues()

	assert.Equal(t, 6+4+4, totalInventory(candidates))
	assert.Equal(t, (1200.0+800.0+400.0)/3, averageCPM(candidates))

	assert.Equal(t, 0, totalInventory(nil))
	assert.Equal(t, 0.0, averageCPM(nil), "empty sets average to 0, not NaN")
}
