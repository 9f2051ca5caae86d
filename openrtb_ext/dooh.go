package openrtb_ext

// DOOHScreen is the protocol-side projection of one marketplace screen: the
// venue object a DSP sees. It is derived deterministically from exactly one
// inventory record plus the taxonomy table, built fresh per conversion and
// never mutated afterwards.
type DOOHScreen struct {
	ScreenID     string `json:"screenid"`
	VenueID      string `json:"venueid"`
	VenueType    string `json:"venuetype"`
	VenueSubtype string `json:"venuesubtype,omitempty"`

	Taxonomy     DOOHTaxonomyCodes  `json:"taxonomy"`
	Location     DOOHLocation       `json:"location"`
	Spec         DOOHSpec           `json:"spec"`
	Availability []DOOHAvailability `json:"availability"`
	Pricing      DOOHPricing        `json:"pricing"`
	Audience     DOOHAudience       `json:"audience"`
}

// DOOHTaxonomyCodes carries the standardized numeric venue codes. ChildCode
// is a pointer because unmapped parent+category pairs are omitted entirely.
type DOOHTaxonomyCodes struct {
	ParentCode int  `json:"parentcode"`
	ChildCode  *int `json:"childcode,omitempty"`
}

// DOOHLocation is the venue point with its accuracy radius in meters.
type DOOHLocation struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Accuracy float64 `json:"accuracy"`
	Address  string  `json:"address,omitempty"`
}

// DOOHSpec is the normalized physical description of the display.
type DOOHSpec struct {
	WidthPx      int64  `json:"w"`
	HeightPx     int64  `json:"h"`
	AspectRatio  string `json:"aspectratio"`
	Orientation  string `json:"orientation"` // "landscape" or "portrait"
	Nits         int64  `json:"nits"`
	PixelDensity int    `json:"ppi"`
	ColorDepth   int    `json:"colordepth"`
	RefreshRate  int    `json:"refreshrate"`
	Environment  string `json:"environment,omitempty"`
}

// DOOHTimeSlot is a daily time window, "HH:MM" local, optionally narrowed to
// specific days of the week.
type DOOHTimeSlot struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Days  []string `json:"days,omitempty"`
}

// DOOHAvailability is one bookable window on a screen.
type DOOHAvailability struct {
	Slot           DOOHTimeSlot `json:"slot"`
	AvailableSpots int          `json:"availablespots"`
	OccupancyRate  float64      `json:"occupancyrate"`
}

// DOOHPricing quotes the venue in CPM terms plus conditional multipliers.
type DOOHPricing struct {
	BaseCPM   float64             `json:"basecpm"`
	Currency  string              `json:"currency"`
	Modifiers []DOOHPriceModifier `json:"modifiers,omitempty"`
}

// DOOHPriceModifier multiplies the base CPM while its condition holds.
type DOOHPriceModifier struct {
	Condition  string   `json:"condition"`
	Multiplier float64  `json:"multiplier"`
	Start      string   `json:"start,omitempty"`
	End        string   `json:"end,omitempty"`
	Days       []string `json:"days,omitempty"`
}

// DOOHAudience is the synthesized audience estimate for a venue.
type DOOHAudience struct {
	DailyImpressions int64                `json:"dailyimpressions"`
	Hourly           []DOOHHourlyAudience `json:"hourly"`
	Demographics     []DOOHDemographic    `json:"demographics"`
	DwellTime        []DOOHDwellBucket    `json:"dwelltime"`
}

// DOOHHourlyAudience is the audience estimate for one hour of the day.
type DOOHHourlyAudience struct {
	Hour           int     `json:"hour"`
	Impressions    float64 `json:"impressions"`
	EstimatedReach float64 `json:"estimatedreach"`
}

// DOOHDemographic is one audience segment's share of daily impressions.
type DOOHDemographic struct {
	Segment string  `json:"segment"`
	Share   float64 `json:"share"`
}

// DOOHDwellBucket is the share of the audience dwelling in front of the
// screen for the labeled duration range.
type DOOHDwellBucket struct {
	Range string  `json:"range"`
	Share float64 `json:"share"`
}
