package exchange

import (
	"context"
	"fmt"

	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/config"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/errortypes"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/inventory"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/pbsmetrics"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/venues"
)

// Exchange is the single boundary external SSPs/DSPs see. Implementations
// must be threadsafe and will be shared across many goroutines; both
// operations are idempotent and safe to retry at this level.
type Exchange interface {
	// HoldAuction answers an OpenRTB bid request over the available inventory.
	HoldAuction(ctx context.Context, bidRequest *openrtb2.BidRequest) (*openrtb2.BidResponse, error)
	// MatchInventory answers a DOOH inventory discovery request.
	MatchInventory(ctx context.Context, request *openrtb_ext.DOOHInventoryRequest) (*openrtb_ext.DOOHInventoryResponse, error)
}

type exchange struct {
	source    inventory.Source
	converter *venues.Converter
	cache     *venueCache
	me        pbsmetrics.MetricsEngine
}

// NewExchange builds the production Exchange over a read-only inventory
// source and a venue converter.
func NewExchange(source inventory.Source, converter *venues.Converter, metricsEngine pbsmetrics.MetricsEngine, cfg *config.Configuration) Exchange {
	return &exchange{
		source:    source,
		converter: converter,
		cache:     newVenueCache(cfg.VenueCache.SizeBytes, cfg.VenueCache.TTLSeconds, converter.TaxonomyVersion()),
		me:        metricsEngine,
	}
}

func (e *exchange) HoldAuction(ctx context.Context, bidRequest *openrtb2.BidRequest) (*openrtb2.BidResponse, error) {
	candidates, err := e.availableVenues(ctx)
	if err != nil {
		return nil, err
	}
	e.me.RecordImps(len(bidRequest.Imp))
	return e.runAuction(bidRequest, candidates)
}

func (e *exchange) MatchInventory(ctx context.Context, request *openrtb_ext.DOOHInventoryRequest) (*openrtb_ext.DOOHInventoryResponse, error) {
	candidates, err := e.availableVenues(ctx)
	if err != nil {
		return nil, err
	}

	matched := matchVenues(request.Targeting.VenueFilter, candidates)
	return &openrtb_ext.DOOHInventoryResponse{
		ID:             request.ID,
		Screens:        matched,
		TotalInventory: totalInventory(matched),
		AverageCPM:     averageCPM(matched),
	}, nil
}

// availableVenues reads the inventory, keeps the screens currently marked
// available and converts them to protocol venues. Source failures surface as
// SourceUnavailable; a context already past its deadline as Timeout.
func (e *exchange) availableVenues(ctx context.Context) ([]openrtb_ext.DOOHScreen, error) {
	if err := ctx.Err(); err != nil {
		return nil, &errortypes.Timeout{Message: fmt.Sprintf("request deadline reached before the inventory was read: %v", err)}
	}

	screens, err := e.source.GetScreens(ctx)
	if err != nil {
		if _, ok := err.(*errortypes.SourceUnavailable); ok {
			return nil, err
		}
		return nil, &errortypes.SourceUnavailable{Message: fmt.Sprintf("inventory source failed: %v", err)}
	}

	return e.convertAll(inventory.AvailableOnly(screens)), nil
}

func (e *exchange) convertAll(screens []inventory.Screen) []openrtb_ext.DOOHScreen {
	converted := make([]openrtb_ext.DOOHScreen, 0, len(screens))
	for _, screen := range screens {
		if venue, ok := e.cache.get(screen.ID); ok {
			converted = append(converted, venue)
			continue
		}
		venue := e.converter.Convert(screen)
		e.cache.put(screen.ID, venue)
		converted = append(converted, venue)
	}
	return converted
}
