package dooh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/config"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/errortypes"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/exchange"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/pbsmetrics"
)

// NewAuctionEndpoint returns the handler for POST /openrtb2/dooh/auction.
func NewAuctionEndpoint(ex exchange.Exchange, cfg *config.Configuration, metricsEngine pbsmetrics.MetricsEngine) (httprouter.Handle, error) {
	if ex == nil || cfg == nil || metricsEngine == nil {
		return nil, errors.New("NewAuctionEndpoint requires non-nil arguments.")
	}
	return httprouter.Handle((&auctionDeps{ex, cfg, metricsEngine}).Auction), nil
}

type auctionDeps struct {
	ex  exchange.Exchange
	cfg *config.Configuration
	me  pbsmetrics.MetricsEngine
}

func (deps *auctionDeps) Auction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()

	req, ctx, cancel, errL := deps.parseRequest(r)
	defer cancel() // Safe because parseRequest returns a no-op if there's nothing to cancel
	if errortypes.ContainsFatalError(errL) {
		w.WriteHeader(http.StatusBadRequest)
		for _, err := range errortypes.FatalOnly(errL) {
			fmt.Fprintf(w, "Invalid request format: %s\n", err.Error())
		}
		deps.me.RecordRequest(pbsmetrics.ReqTypeBid, pbsmetrics.RequestStatusBadInput)
		return
	}

	response, err := deps.ex.HoldAuction(ctx, req)
	if err != nil {
		writeError(w, err)
		deps.me.RecordRequest(pbsmetrics.ReqTypeBid, metricsStatusForError(err))
		return
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "Failed to marshal auction response: %v", err)
		deps.me.RecordRequest(pbsmetrics.ReqTypeBid, pbsmetrics.RequestStatusErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseBytes)
	deps.me.RecordRequest(pbsmetrics.ReqTypeBid, pbsmetrics.RequestStatusOK)
	deps.me.RecordRequestTime(pbsmetrics.ReqTypeBid, time.Since(start))
}

// parseRequest turns the HTTP request into an OpenRTB bid request. This is
// guaranteed to return:
//
//   - A context which times out appropriately, given the request.
//   - A cancellation function which should be called if the auction finishes early.
//
// If the errors list contains a fatal error, then no guarantees are made
// about the returned request.
func (deps *auctionDeps) parseRequest(httpRequest *http.Request) (req *openrtb2.BidRequest, ctx context.Context, cancel func(), errs []error) {
	req = &openrtb2.BidRequest{}
	ctx = context.Background()
	cancel = func() {}

	if err := json.NewDecoder(httpRequest.Body).Decode(req); err != nil {
		errs = []error{&errortypes.BadInput{Message: err.Error()}}
		return
	}

	timeout := deps.cfg.LimitTimeout(time.Duration(req.TMax) * time.Millisecond)
	ctx, cancel = context.WithTimeout(ctx, timeout)

	errs = deps.validateRequest(req)
	return
}

func (deps *auctionDeps) validateRequest(req *openrtb2.BidRequest) []error {
	if req.ID == "" {
		return []error{&errortypes.BadInput{Message: `request missing required field: "id"`}}
	}

	if req.TMax < 0 {
		return []error{&errortypes.BadInput{Message: fmt.Sprintf("request.tmax must be nonnegative. Got %d", req.TMax)}}
	}

	if len(req.Imp) < 1 {
		return []error{&errortypes.BadInput{Message: "request.imp must contain at least one element."}}
	}

	var errs []error
	for index := range req.Imp {
		if err := validateImp(&req.Imp[index], index); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateImp(imp *openrtb2.Imp, index int) error {
	if imp.ID == "" {
		return &errortypes.BadInput{Message: fmt.Sprintf(`request.imp[%d] missing required field: "id"`, index)}
	}

	if imp.BidFloor < 0 {
		return &errortypes.BadInput{Message: fmt.Sprintf("request.imp[%d].bidfloor must be nonnegative. Got %f", index, imp.BidFloor)}
	}

	var impExt openrtb_ext.ExtImp
	if len(imp.Ext) == 0 {
		return &errortypes.BadInput{Message: fmt.Sprintf("request.imp[%d].ext.dooh.screenid is required", index)}
	}
	if err := json.Unmarshal(imp.Ext, &impExt); err != nil {
		return &errortypes.BadInput{Message: fmt.Sprintf("request.imp[%d].ext is invalid: %v", index, err)}
	}
	if impExt.DOOH == nil || impExt.DOOH.ScreenID == "" {
		return &errortypes.BadInput{Message: fmt.Sprintf("request.imp[%d].ext.dooh.screenid is required", index)}
	}

	return validatePmp(imp.PMP, index)
}

func validatePmp(pmp *openrtb2.PMP, impIndex int) error {
	if pmp == nil {
		return nil
	}

	for dealIndex, deal := range pmp.Deals {
		if deal.ID == "" {
			return &errortypes.BadInput{Message: fmt.Sprintf(`request.imp[%d].pmp.deals[%d] missing required field: "id"`, impIndex, dealIndex)}
		}
	}
	return nil
}
