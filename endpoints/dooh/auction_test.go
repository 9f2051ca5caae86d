package dooh

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/stretchr/testify/assert"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/config"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/errortypes"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/pbsmetrics"
)

type stubExchange struct {
	auctionResponse   *openrtb2.BidResponse
	inventoryResponse *openrtb_ext.DOOHInventoryResponse
	err               error

	lastBidRequest       *openrtb2.BidRequest
	lastInventoryRequest *openrtb_ext.DOOHInventoryRequest
}

func (ex *stubExchange) HoldAuction(ctx context.Context, req *openrtb2.BidRequest) (*openrtb2.BidResponse, error) {
	ex.lastBidRequest = req
	if err := ctx.Err(); err != nil {
		return nil, &errortypes.Timeout{Message: err.Error()}
	}
	if ex.err != nil {
		return nil, ex.err
	}
	if ex.auctionResponse != nil {
		return ex.auctionResponse, nil
	}
	return &openrtb2.BidResponse{ID: req.ID}, nil
}

func (ex *stubExchange) MatchInventory(ctx context.Context, req *openrtb_ext.DOOHInventoryRequest) (*openrtb_ext.DOOHInventoryResponse, error) {
	ex.lastInventoryRequest = req
	if err := ctx.Err(); err != nil {
		return nil, &errortypes.Timeout{Message: err.Error()}
	}
	if ex.err != nil {
		return nil, ex.err
	}
	if ex.inventoryResponse != nil {
		return ex.inventoryResponse, nil
	}
	return &openrtb_ext.DOOHInventoryResponse{ID: req.ID}, nil
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		DefaultTimeoutMS: 250,
		MaxTimeoutMS:     1000,
	}
}

func testMetrics() pbsmetrics.MetricsEngine {
	return pbsmetrics.NewBlankMetrics(metrics.NewRegistry())
}

func newAuctionHandler(t *testing.T, ex *stubExchange) func(http.ResponseWriter, *http.Request) {
	endpoint, err := NewAuctionEndpoint(ex, testConfig(), testMetrics())
	assert.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		endpoint(w, r, nil)
	}
}

func validBidRequestBody(t *testing.T) string {
	impExt, err := json.Marshal(openrtb_ext.ExtImp{DOOH: &openrtb_ext.ExtImpDOOH{ScreenID: "s1"}})
	assert.NoError(t, err)
	request := openrtb2.BidRequest{
		ID:   "bid-1",
		TMax: 500,
		Imp:  []openrtb2.Imp{{ID: "imp-1", Ext: impExt}},
	}
	body, err := json.Marshal(request)
	assert.NoError(t, err)
	return string(body)
}

func TestAuctionHappyPath(t *testing.T) {
	ex := &stubExchange{}
	handler := newAuctionHandler(t, ex)

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("POST", "/openrtb2/dooh/auction", strings.NewReader(validBidRequestBody(t))))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var response openrtb2.BidResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "bid-1", response.ID)
	assert.NotNil(t, ex.lastBidRequest)
}

func TestAuctionBadJSON(t *testing.T) {
	handler := newAuctionHandler(t, &stubExchange{})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("POST", "/openrtb2/dooh/auction", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid request format")
}

func TestAuctionRequestValidation(t *testing.T) {
	testCases := []struct {
		description string
		body        string
		wantMessage string
	}{
		{
			description: "Missing request id",
			body:        `{"imp":[{"id":"imp-1","ext":{"dooh":{"screenid":"s1"}}}]}`,
			wantMessage: `request missing required field: "id"`,
		},
		{
			description: "No impressions",
			body:        `{"id":"bid-1","imp":[]}`,
			wantMessage: "request.imp must contain at least one element",
		},
		{
			description: "Missing imp id",
			body:        `{"id":"bid-1","imp":[{"ext":{"dooh":{"screenid":"s1"}}}]}`,
			wantMessage: `request.imp[0] missing required field: "id"`,
		},
		{
			description: "Negative bid floor",
			body:        `{"id":"bid-1","imp":[{"id":"imp-1","bidfloor":-1,"ext":{"dooh":{"screenid":"s1"}}}]}`,
			wantMessage: "request.imp[0].bidfloor must be nonnegative",
		},
		{
			description: "Missing imp.ext",
			body:        `{"id":"bid-1","imp":[{"id":"imp-1"}]}`,
			wantMessage: "request.imp[0].ext.dooh.screenid is required",
		},
		{
			description: "Missing screen id",
			body:        `{"id":"bid-1","imp":[{"id":"imp-1","ext":{"dooh":{}}}]}`,
			wantMessage: "request.imp[0].ext.dooh.screenid is required",
		},
		{
			description: "Empty deal id",
			body:        `{"id":"bid-1","imp":[{"id":"imp-1","pmp":{"deals":[{"id":""}]},"ext":{"dooh":{"screenid":"s1"}}}]}`,
			wantMessage: `request.imp[0].pmp.deals[0] missing required field: "id"`,
		},
	}

	handler := newAuctionHandler(t, &stubExchange{})
	for _, test := range testCases {
		recorder := httptest.NewRecorder()
		handler(recorder, httptest.NewRequest("POST", "/openrtb2/dooh/auction", strings.NewReader(test.body)))

		assert.Equal(t, http.StatusBadRequest, recorder.Code, test.description)
		assert.Contains(t, recorder.Body.String(), test.wantMessage, test.description)
	}
}

func TestAuctionSourceUnavailable(t *testing.T) {
	ex := &stubExchange{err: &errortypes.SourceUnavailable{Message: "inventory source offline"}}
	handler := newAuctionHandler(t, ex)

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("POST", "/openrtb2/dooh/auction", strings.NewReader(validBidRequestBody(t))))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "inventory source offline")
}

func TestAuctionTimeout(t *testing.T) {
	ex := &stubExchange{err: &errortypes.Timeout{Message: "context deadline exceeded"}}
	handler := newAuctionHandler(t, ex)

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("POST", "/openrtb2/dooh/auction", strings.NewReader(validBidRequestBody(t))))

	assert.Equal(t, http.StatusRequestTimeout, recorder.Code)
}
