package venues

import (
	"fmt"
	"strings"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/inventory"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/taxonomy"
)

const (
	// Quoted currency for the whole exchange. The marketplace prices in COP
	// and no currency conversion happens on this side of the contract.
	Currency = "COP"

	defaultBrightnessNits = 7500
	defaultHourlySpots    = 4
	assumedOccupancyRate  = 0.75

	// Physical defaults the marketplace record does not carry.
	pixelDensityPPI = 72
	colorDepthBits  = 24
	refreshRateHz   = 60

	defaultOpenTime  = "06:00"
	defaultCloseTime = "22:00"

	// Fallback venue point for screens with no coordinates on record.
	fallbackLat = 4.6097
	fallbackLon = -74.0817

	// Assumed accuracy of venue coordinates, in meters.
	locationAccuracyM = 10

	peakStart         = "18:00"
	peakEnd           = "21:00"
	peakMultiplier    = 1.5
	weekendMultiplier = 1.2
)

var allDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekendDays = []string{"saturday", "sunday"}

// Converter projects marketplace screens into protocol venues. It holds only
// read-only collaborators, so one instance is shared by all requests.
type Converter struct {
	taxonomy *taxonomy.Taxonomy
	audience AudienceEstimator
}

// NewConverter builds a Converter around a loaded taxonomy and an audience
// estimation strategy.
func NewConverter(tax *taxonomy.Taxonomy, audience AudienceEstimator) *Converter {
	return &Converter{
		taxonomy: tax,
		audience: audience,
	}
}

// TaxonomyVersion exposes the version of the taxonomy the converter was
// built with, so downstream caches can key converted venues by it.
func (c *Converter) TaxonomyVersion() string {
	return c.taxonomy.Version()
}

// Convert derives the protocol venue for one screen. It is pure and total:
// the same screen and taxonomy always produce the same DOOHScreen, and any
// well-formed screen converts without error.
func (c *Converter) Convert(screen inventory.Screen) openrtb_ext.DOOHScreen {
	parent := c.taxonomy.Parent(screen.Category.ID)

	return openrtb_ext.DOOHScreen{
		ScreenID:     screen.ID,
		VenueID:      "venue_" + screen.ID,
		VenueType:    parent,
		VenueSubtype: screen.Category.ID,
		Taxonomy:     c.taxonomyCodes(parent, screen.Category.ID),
		Location:     venueLocation(screen),
		Spec:         venueSpec(screen),
		Availability: []openrtb_ext.DOOHAvailability{availabilityWindow(screen)},
		Pricing:      venuePricing(screen),
		Audience:     c.audience.Estimate(screen),
	}
}

func (c *Converter) taxonomyCodes(parent, categoryID string) openrtb_ext.DOOHTaxonomyCodes {
	codes := openrtb_ext.DOOHTaxonomyCodes{
		ParentCode: c.taxonomy.ParentCode(parent),
	}
	if child, ok := c.taxonomy.ChildCode(parent, categoryID); ok {
		codes.ChildCode = &child
	}
	return codes
}

func venueLocation(screen inventory.Screen) openrtb_ext.DOOHLocation {
	location := openrtb_ext.DOOHLocation{
		Lat:      fallbackLat,
		Lon:      fallbackLon,
		Accuracy: locationAccuracyM,
		Address:  screen.Location,
	}
	if screen.Coordinates != nil {
		location.Lat = screen.Coordinates.Lat
		location.Lon = screen.Coordinates.Lng
	}
	return location
}

func venueSpec(screen inventory.Screen) openrtb_ext.DOOHSpec {
	orientation := "portrait"
	if screen.Specs.Width >= screen.Specs.Height {
		orientation = "landscape"
	}
	return openrtb_ext.DOOHSpec{
		WidthPx:      screen.Specs.Width,
		HeightPx:     screen.Specs.Height,
		AspectRatio:  fmt.Sprintf("%d:%d", screen.Specs.Width, screen.Specs.Height),
		Orientation:  orientation,
		Nits:         parseBrightness(screen.Specs.Brightness),
		PixelDensity: pixelDensityPPI,
		ColorDepth:   colorDepthBits,
		RefreshRate:  refreshRateHz,
		Environment:  screen.Environment,
	}
}

// parseBrightness reads the leading integer of the owner-entered brightness
// text, e.g. "5500 nits" or "700". Unparseable text gets the default.
func parseBrightness(brightness string) int64 {
	trimmed := strings.TrimSpace(brightness)
	var value int64
	var seen bool
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			break
		}
		value = value*10 + int64(r-'0')
		seen = true
	}
	if !seen {
		return defaultBrightnessNits
	}
	return value
}

func availabilityWindow(screen inventory.Screen) openrtb_ext.DOOHAvailability {
	start, end := defaultOpenTime, defaultCloseTime
	if screen.OperatingHours != nil {
		start, end = screen.OperatingHours.Start, screen.OperatingHours.End
	}

	spots := defaultHourlySpots
	if hourly := screen.Pricing.Bundles.Hourly; hourly != nil && hourly.Enabled {
		spots = hourly.Spots
	}

	return openrtb_ext.DOOHAvailability{
		Slot: openrtb_ext.DOOHTimeSlot{
			Start: start,
			End:   end,
			Days:  allDays,
		},
		AvailableSpots: spots,
		OccupancyRate:  assumedOccupancyRate,
	}
}

func venuePricing(screen inventory.Screen) openrtb_ext.DOOHPricing {
	return openrtb_ext.DOOHPricing{
		BaseCPM:  screen.Price / 1000,
		Currency: Currency,
		Modifiers: []openrtb_ext.DOOHPriceModifier{
			{
				Condition:  "peak_hours",
				Multiplier: peakMultiplier,
				Start:      peakStart,
				End:        peakEnd,
			},
			{
				Condition:  "weekend",
				Multiplier: weekendMultiplier,
				Days:       weekendDays,
			},
		},
	}
}
