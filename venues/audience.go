package venues

import (
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/inventory"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
)

// AudienceEstimator produces the audience block of a venue. The converter
// treats it as a strategy so the fixed tables below can later be swapped for
// measured data without touching the conversion logic.
//
// Implementations must be pure: the same screen always yields the same
// estimate.
type AudienceEstimator interface {
	Estimate(screen inventory.Screen) openrtb_ext.DOOHAudience
}

// FixedAudienceEstimator is the default strategy. Daily impressions come from
// the screen's measured daily views; the hourly breakdown, demographics and
// dwell times are modeled, not measured.
type FixedAudienceEstimator struct{}

const hourlyReachRate = 0.8

var fixedDemographics = []openrtb_ext.DOOHDemographic{
	{Segment: "age_18_24", Share: 0.16},
	{Segment: "age_25_34", Share: 0.27},
	{Segment: "age_35_44", Share: 0.23},
	{Segment: "age_45_54", Share: 0.18},
	{Segment: "age_55_plus", Share: 0.16},
}

var fixedDwellTime = []openrtb_ext.DOOHDwellBucket{
	{Range: "0-15s", Share: 0.35},
	{Range: "15-30s", Share: 0.40},
	{Range: "30-60s", Share: 0.20},
	{Range: "60s+", Share: 0.05},
}

func (FixedAudienceEstimator) Estimate(screen inventory.Screen) openrtb_ext.DOOHAudience {
	perHour := float64(screen.ViewsDaily) / 24

	hourly := make([]openrtb_ext.DOOHHourlyAudience, 24)
	for hour := 0; hour < 24; hour++ {
		hourly[hour] = openrtb_ext.DOOHHourlyAudience{
			Hour:           hour,
			Impressions:    perHour,
			EstimatedReach: perHour * hourlyReachRate,
		}
	}

	return openrtb_ext.DOOHAudience{
		DailyImpressions: screen.ViewsDaily,
		Hourly:           hourly,
		Demographics:     fixedDemographics,
		DwellTime:        fixedDwellTime,
	}
}
