package openrtb_ext

import (
	"encoding/json"
	"fmt"

	"github.com/prebid/openrtb/v20/openrtb2"
)

// DOOHVenueFilter narrows the inventory a request is interested in. Nil or
// empty fields mean "no constraint"; see the matching pipeline for the exact
// narrowing semantics of each field.
type DOOHVenueFilter struct {
	VenueTypes          []string       `json:"venuetypes,omitempty"`
	Geo                 *DOOHGeoFilter `json:"geo,omitempty"`
	MinDailyImpressions *int64         `json:"minimpressions,omitempty"`
	MaxCPM              *float64       `json:"maxcpm,omitempty"`
}

// DOOHGeoFilter constrains venues geographically. Cities and Points are
// independent narrowings: when both are present a venue must satisfy both.
type DOOHGeoFilter struct {
	Cities   []string       `json:"cities,omitempty"`
	Points   []DOOHGeoPoint `json:"points,omitempty"`
	RadiusKM float64        `json:"radiuskm,omitempty"`
}

type DOOHGeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DOOHTargetingCriteria is the request-side targeting container.
type DOOHTargetingCriteria struct {
	VenueFilter DOOHVenueFilter `json:"venuefilter"`
}

// DOOHBudget is the money the requester intends to spend.
type DOOHBudget struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// DOOHSchedule describes when a campaign wants to run.
type DOOHSchedule struct {
	StartDate string         `json:"startdate,omitempty"`
	EndDate   string         `json:"enddate,omitempty"`
	TimeSlots []DOOHTimeSlot `json:"timeslots,omitempty"`
	Days      []string       `json:"days,omitempty"`
}

// DOOHInventoryRequest asks the exchange what inventory is available under
// the stated constraints.
type DOOHInventoryRequest struct {
	ID        string                `json:"id"`
	Targeting DOOHTargetingCriteria `json:"targeting"`
	TimeSlots []DOOHTimeSlot        `json:"timeslots,omitempty"`
	Budget    *DOOHBudget           `json:"budget,omitempty"`
	Ext       json.RawMessage       `json:"ext,omitempty"`
}

// DOOHInventoryResponse lists the venues that survived the filter pipeline
// plus the aggregates over them.
type DOOHInventoryResponse struct {
	ID             string       `json:"id"`
	Screens        []DOOHScreen `json:"screens"`
	TotalInventory int          `json:"totalinventory"`
	AverageCPM     float64      `json:"averagecpm"`
}

// NewInventoryRequest assembles a DOOHInventoryRequest. It exists so callers
// build requests one way instead of re-deriving the shape per call site.
func NewInventoryRequest(requestID string, targeting DOOHTargetingCriteria, budget *DOOHBudget, timeSlots []DOOHTimeSlot) *DOOHInventoryRequest {
	return &DOOHInventoryRequest{
		ID:        requestID,
		Targeting: targeting,
		TimeSlots: timeSlots,
		Budget:    budget,
	}
}

// NewBidRequest assembles an OpenRTB bid request with one impression per
// venue. Each imp carries the target screen in imp.ext.dooh and the venue's
// base CPM as its floor.
func NewBidRequest(campaignID string, venues []DOOHScreen, targeting DOOHTargetingCriteria, budget *DOOHBudget, schedule *DOOHSchedule) (*openrtb2.BidRequest, error) {
	imps := make([]openrtb2.Imp, 0, len(venues))
	for i, venue := range venues {
		impExt, err := json.Marshal(ExtImp{DOOH: &ExtImpDOOH{ScreenID: venue.ScreenID}})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal imp.ext for venue %s: %v", venue.ScreenID, err)
		}
		imps = append(imps, openrtb2.Imp{
			ID:          fmt.Sprintf("%s-imp-%d", campaignID, i+1),
			TagID:       venue.VenueID,
			BidFloor:    venue.Pricing.BaseCPM,
			BidFloorCur: venue.Pricing.Currency,
			Ext:         impExt,
		})
	}

	reqExt, err := json.Marshal(ExtRequest{DOOH: &ExtRequestDOOH{
		CampaignID: campaignID,
		Targeting:  &targeting,
		Budget:     budget,
		Schedule:   schedule,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request.ext: %v", err)
	}

	return &openrtb2.BidRequest{
		ID:  campaignID,
		Imp: imps,
		Cur: []string{"COP"},
		Ext: reqExt,
	}, nil
}
