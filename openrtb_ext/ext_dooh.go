package openrtb_ext

// ExtImp is the shape of imp.ext on this exchange.
type ExtImp struct {
	DOOH *ExtImpDOOH `json:"dooh,omitempty"`
}

// ExtImpDOOH identifies the screen an impression opportunity targets.
type ExtImpDOOH struct {
	ScreenID string `json:"screenid"`
}

// ExtRequest is the shape of request.ext on this exchange.
type ExtRequest struct {
	DOOH *ExtRequestDOOH `json:"dooh,omitempty"`
}

// ExtRequestDOOH carries campaign-level context on a bid request, plus the
// optional stored-request reference resolved before dispatch.
type ExtRequestDOOH struct {
	CampaignID    string                 `json:"campaignid,omitempty"`
	Targeting     *DOOHTargetingCriteria `json:"targeting,omitempty"`
	Budget        *DOOHBudget            `json:"budget,omitempty"`
	Schedule      *DOOHSchedule          `json:"schedule,omitempty"`
	StoredRequest *ExtStoredRequest      `json:"storedrequest,omitempty"`
}

// ExtStoredRequest references stored defaults to merge into the request.
type ExtStoredRequest struct {
	ID string `json:"id"`
}

// BidStatus is the per-impression outcome reported in response.ext.dooh.
type BidStatus string

const (
	// StatusWon means a winning bid was returned for the impression.
	StatusWon BidStatus = "won"
	// StatusNoInventory means the targeted screen is not in the candidate
	// inventory. The impression is absent from the seatbid list.
	StatusNoInventory BidStatus = "no-inventory"
	// StatusBelowFloor means no price at or above the stated floor could be
	// offered. The current pricing rule clamps to the floor, so this status
	// is reserved for future pricing rules that may decline instead.
	StatusBelowFloor BidStatus = "below-floor"
)

// ExtBidResponse is the shape of response.ext on this exchange.
type ExtBidResponse struct {
	DOOH *ExtBidResponseDOOH `json:"dooh,omitempty"`
}

// ExtBidResponseDOOH reports the outcome of every impression in the request,
// including the ones omitted from the seatbid list, so callers are never left
// guessing which opportunities were dropped.
type ExtBidResponseDOOH struct {
	ImpStatus []ImpStatus `json:"impstatus"`
}

// ImpStatus pairs one impression id with its auction outcome.
type ImpStatus struct {
	ImpID  string    `json:"impid"`
	Status BidStatus `json:"status"`
}
