package exchange

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/gofrs/uuid"
	"github.com/golang/glog"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/venues"
)

const (
	// bidMarkup is the flat markup applied over a venue's base CPM.
	bidMarkup = 1.1

	// seatName identifies this exchange in the seatbid list.
	seatName = "shareflow"
)

// runAuction computes a winning bid for every impression whose target screen
// is in the candidate inventory. Impressions with no matching screen are
// omitted from the seatbid list but still reported in response.ext.dooh, so
// the winning-bid count never exceeds the imp count and request order is
// preserved.
func (e *exchange) runAuction(bidRequest *openrtb2.BidRequest, candidates []openrtb_ext.DOOHScreen) (*openrtb2.BidResponse, error) {
	byScreenID := make(map[string]openrtb_ext.DOOHScreen, len(candidates))
	for _, venue := range candidates {
		byScreenID[venue.ScreenID] = venue
	}

	bids := make([]openrtb2.Bid, 0, len(bidRequest.Imp))
	statuses := make([]openrtb_ext.ImpStatus, 0, len(bidRequest.Imp))
	for _, imp := range bidRequest.Imp {
		screenID, err := impScreenID(&imp)
		if err != nil {
			glog.Warningf("imp %s has no usable dooh extension: %v", imp.ID, err)
			statuses = append(statuses, openrtb_ext.ImpStatus{ImpID: imp.ID, Status: openrtb_ext.StatusNoInventory})
			continue
		}
		venue, ok := byScreenID[screenID]
		if !ok {
			statuses = append(statuses, openrtb_ext.ImpStatus{ImpID: imp.ID, Status: openrtb_ext.StatusNoInventory})
			continue
		}

		price := winningPrice(venue.Pricing.BaseCPM, imp.BidFloor)
		bids = append(bids, openrtb2.Bid{
			ID:     newID(),
			ImpID:  imp.ID,
			Price:  price,
			AdM:    renderAdMarkup(imp.ID),
			DealID: firstDealID(imp.PMP),
		})
		statuses = append(statuses, openrtb_ext.ImpStatus{ImpID: imp.ID, Status: openrtb_ext.StatusWon})
		e.me.RecordWinningBid(price)
	}

	responseExt, err := json.Marshal(openrtb_ext.ExtBidResponse{DOOH: &openrtb_ext.ExtBidResponseDOOH{ImpStatus: statuses}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bid response ext: %v", err)
	}

	response := &openrtb2.BidResponse{
		ID:    bidRequest.ID,
		BidID: newID(),
		Cur:   venues.Currency,
		Ext:   responseExt,
	}
	if len(bids) > 0 {
		response.SeatBid = []openrtb2.SeatBid{{
			Seat: seatName,
			Bid:  bids,
		}}
	}
	return response, nil
}

// winningPrice applies the flat markup over the base CPM, clamped below by
// the requester's floor.
func winningPrice(baseCPM float64, bidFloor float64) float64 {
	price := baseCPM * bidMarkup
	if price < bidFloor {
		return bidFloor
	}
	return price
}

// impScreenID pulls the target screen out of imp.ext.dooh.screenid without
// unmarshalling the whole extension object.
func impScreenID(imp *openrtb2.Imp) (string, error) {
	if len(imp.Ext) == 0 {
		return "", fmt.Errorf("imp.ext is empty")
	}
	screenID, err := jsonparser.GetString(imp.Ext, "dooh", "screenid")
	if err != nil {
		return "", fmt.Errorf("imp.ext.dooh.screenid: %v", err)
	}
	return screenID, nil
}

func firstDealID(pmp *openrtb2.PMP) string {
	if pmp == nil || len(pmp.Deals) == 0 {
		return ""
	}
	return pmp.Deals[0].ID
}

func renderAdMarkup(impID string) string {
	return fmt.Sprintf(`<div class="shareflow-dooh-slot" data-imp-id="%s"></div>`, impID)
}

func newID() string {
	rawUUID, err := uuid.NewV4()
	if err != nil {
		glog.Errorf("failed to generate uuid: %v", err)
		return ""
	}
	return rawUUID.String()
}
