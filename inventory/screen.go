package inventory

// Screen is the marketplace inventory record for one sellable ad surface.
// It is owned by the booking/marketplace side; the exchange only reads it.
type Screen struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Category    Category     `json:"category"`
	Specs       Specs        `json:"specs"`
	Environment string       `json:"environment"` // "indoor" or "outdoor"

	ViewsDaily     int64   `json:"viewsDaily"`
	ViewsMonthly   int64   `json:"viewsMonthly"`
	EngagementRate float64 `json:"engagementRate"`

	OperatingHours *OperatingHours `json:"operatingHours,omitempty"`

	// Price is the marketplace list price in COP, the basis for the CPM
	// quoted on the exchange.
	Price   float64 `json:"price"`
	Pricing Pricing `json:"pricing"`

	Available bool `json:"available"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Category is a marketplace taxonomy leaf.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Specs struct {
	Width      int64  `json:"width"`
	Height     int64  `json:"height"`
	Resolution string `json:"resolution"`
	// Brightness is free text as entered by the screen owner, e.g. "5000 nits".
	Brightness string `json:"brightness"`
}

// OperatingHours is the daily on-air window, "HH:MM" local time.
type OperatingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Pricing holds the optional time-bucket bundles plus the moments flag.
type Pricing struct {
	AllowMoments bool    `json:"allowMoments"`
	Bundles      Bundles `json:"bundles"`
}

type Bundles struct {
	Hourly  *Bundle `json:"hourly,omitempty"`
	Daily   *Bundle `json:"daily,omitempty"`
	Weekly  *Bundle `json:"weekly,omitempty"`
	Monthly *Bundle `json:"monthly,omitempty"`
}

type Bundle struct {
	Enabled bool    `json:"enabled"`
	Price   float64 `json:"price"`
	Spots   int     `json:"spots"`
}
