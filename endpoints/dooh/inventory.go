package dooh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/julienschmidt/httprouter"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/config"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/errortypes"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/exchange"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/pbsmetrics"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/stored_requests"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/util/geoutil"
)

// NewInventoryEndpoint returns the handler for POST /dooh/inventory.
func NewInventoryEndpoint(
	ex exchange.Exchange,
	cfg *config.Configuration,
	paramsValidator openrtb_ext.VenueParamValidator,
	venueInfos config.VenueInfos,
	storedReqFetcher stored_requests.Fetcher,
	metricsEngine pbsmetrics.MetricsEngine,
) (httprouter.Handle, error) {
	if ex == nil || cfg == nil || paramsValidator == nil || storedReqFetcher == nil || metricsEngine == nil {
		return nil, errors.New("NewInventoryEndpoint requires non-nil arguments.")
	}
	deps := &inventoryDeps{
		ex:               ex,
		cfg:              cfg,
		paramsValidator:  paramsValidator,
		venueInfos:       venueInfos,
		storedReqFetcher: storedReqFetcher,
		me:               metricsEngine,
	}
	return httprouter.Handle(deps.Inventory), nil
}

type inventoryDeps struct {
	ex               exchange.Exchange
	cfg              *config.Configuration
	paramsValidator  openrtb_ext.VenueParamValidator
	venueInfos       config.VenueInfos
	storedReqFetcher stored_requests.Fetcher
	me               pbsmetrics.MetricsEngine
}

func (deps *inventoryDeps) Inventory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.DefaultTimeout())
	defer cancel()

	req, errL := deps.parseRequest(ctx, r)
	if errortypes.ContainsFatalError(errL) {
		w.WriteHeader(http.StatusBadRequest)
		for _, err := range errortypes.FatalOnly(errL) {
			fmt.Fprintf(w, "Invalid request format: %s\n", err.Error())
		}
		deps.me.RecordRequest(pbsmetrics.ReqTypeInventory, pbsmetrics.RequestStatusBadInput)
		return
	}

	response, err := deps.ex.MatchInventory(ctx, req)
	if err != nil {
		writeError(w, err)
		deps.me.RecordRequest(pbsmetrics.ReqTypeInventory, metricsStatusForError(err))
		return
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "Failed to marshal inventory response: %v", err)
		deps.me.RecordRequest(pbsmetrics.ReqTypeInventory, pbsmetrics.RequestStatusErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseBytes)
	deps.me.RecordRequest(pbsmetrics.ReqTypeInventory, pbsmetrics.RequestStatusOK)
	deps.me.RecordRequestTime(pbsmetrics.ReqTypeInventory, time.Since(start))
}

func (deps *inventoryDeps) parseRequest(ctx context.Context, httpRequest *http.Request) (*openrtb_ext.DOOHInventoryRequest, []error) {
	body, err := io.ReadAll(httpRequest.Body)
	if err != nil {
		return nil, []error{&errortypes.BadInput{Message: err.Error()}}
	}

	body, errs := deps.mergeStoredDefaults(ctx, body)
	if len(errs) > 0 {
		return nil, errs
	}

	req := &openrtb_ext.DOOHInventoryRequest{}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, []error{&errortypes.BadInput{Message: err.Error()}}
	}

	return req, deps.validateRequest(req)
}

// mergeStoredDefaults resolves ext.dooh.storedrequest.id, if present, and
// merges the inbound request on top of the stored defaults. The inbound
// request wins on conflicts.
func (deps *inventoryDeps) mergeStoredDefaults(ctx context.Context, body []byte) ([]byte, []error) {
	storedID, err := storedRequestID(body)
	if err != nil {
		return nil, []error{&errortypes.BadInput{Message: err.Error()}}
	}
	if storedID == "" {
		return body, nil
	}

	storedData, errs := deps.storedReqFetcher.FetchRequests(ctx, []string{storedID})
	if len(errs) > 0 {
		badInput := make([]error, 0, len(errs))
		for _, err := range errs {
			var notFound stored_requests.NotFoundError
			if errors.As(err, &notFound) {
				badInput = append(badInput, &errortypes.BadInput{Message: err.Error()})
			} else {
				badInput = append(badInput, err)
			}
		}
		return nil, badInput
	}

	merged, err := jsonpatch.MergePatch(storedData[storedID], body)
	if err != nil {
		return nil, []error{&errortypes.BadInput{Message: fmt.Sprintf("could not merge stored request %s: %v", storedID, err)}}
	}
	return merged, nil
}

func storedRequestID(body []byte) (string, error) {
	var envelope struct {
		Ext json.RawMessage `json:"ext"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", err
	}
	if len(envelope.Ext) == 0 {
		return "", nil
	}

	var ext openrtb_ext.ExtRequest
	if err := json.Unmarshal(envelope.Ext, &ext); err != nil {
		return "", fmt.Errorf("request.ext is invalid: %v", err)
	}
	if ext.DOOH == nil || ext.DOOH.StoredRequest == nil {
		return "", nil
	}
	if ext.DOOH.StoredRequest.ID == "" {
		return "", errors.New("request.ext.dooh.storedrequest.id must not be empty")
	}
	return ext.DOOH.StoredRequest.ID, nil
}

func (deps *inventoryDeps) validateRequest(req *openrtb_ext.DOOHInventoryRequest) []error {
	if req.ID == "" {
		return []error{&errortypes.BadInput{Message: `request missing required field: "id"`}}
	}

	filter := req.Targeting.VenueFilter
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return []error{&errortypes.BadInput{Message: fmt.Sprintf("request.targeting.venuefilter is invalid: %v", err)}}
	}
	if err := deps.paramsValidator.Validate(openrtb_ext.ParamFilter, filterJSON); err != nil {
		return []error{&errortypes.BadInput{Message: fmt.Sprintf("request.targeting.venuefilter failed validation.\n%v", err)}}
	}

	var errs []error
	for _, venueType := range filter.VenueTypes {
		if !deps.venueInfos.Known(venueType) {
			errs = append(errs, &errortypes.Warning{
				Message:     fmt.Sprintf("request.targeting.venuefilter.venuetypes contains unknown venue type %q", venueType),
				WarningCode: errortypes.UnknownVenueTypeWarningCode,
			})
			continue
		}
		if !deps.venueInfos.Enabled(venueType) {
			errs = append(errs, &errortypes.BadInput{
				Message: fmt.Sprintf("request.targeting.venuefilter.venuetypes contains disabled venue type %q", venueType),
			})
		}
	}

	if geo := filter.Geo; geo != nil {
		for i, point := range geo.Points {
			if !geoutil.ValidCoordinates(point.Lat, point.Lon) {
				errs = append(errs, &errortypes.BadInput{
					Message: fmt.Sprintf("request.targeting.venuefilter.geo.points[%d] has invalid coordinates (%v, %v)", i, point.Lat, point.Lon),
				})
			}
		}
		if len(geo.Points) > 0 && geo.RadiusKM <= 0 {
			errs = append(errs, &errortypes.BadInput{
				Message: fmt.Sprintf("request.targeting.venuefilter.geo.radiuskm must be positive when points are given. Got %f", geo.RadiusKM),
			})
		}
	}

	if filter.MinDailyImpressions != nil && *filter.MinDailyImpressions < 0 {
		errs = append(errs, &errortypes.BadInput{
			Message: fmt.Sprintf("request.targeting.venuefilter.minimpressions must be nonnegative. Got %d", *filter.MinDailyImpressions),
		})
	}
	if filter.MaxCPM != nil && *filter.MaxCPM < 0 {
		errs = append(errs, &errortypes.BadInput{
			Message: fmt.Sprintf("request.targeting.venuefilter.maxcpm must be nonnegative. Got %f", *filter.MaxCPM),
		})
	}
	if req.Budget != nil && req.Budget.Total < 0 {
		errs = append(errs, &errortypes.BadInput{
			Message: fmt.Sprintf("request.budget.total must be nonnegative. Got %f", req.Budget.Total),
		})
	}

	return errs
}
