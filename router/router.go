package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/config"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/endpoints"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/endpoints/dooh"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/exchange"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/inventory"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/pbsmetrics"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/stored_requests/backends/file_fetcher"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/taxonomy"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/venues"

	metrics "github.com/rcrowley/go-metrics"
)

// Router owns the HTTP surface of the exchange plus the shared infrastructure
// behind it.
type Router struct {
	*httprouter.Router
	MetricsEngine   *pbsmetrics.Metrics
	ParamsValidator openrtb_ext.VenueParamValidator
	Exchange        exchange.Exchange
}

// New wires the full request pipeline from the config: taxonomy, venue info,
// inventory source, converter, exchange and the endpoints on top of them.
func New(cfg *config.Configuration) (*Router, error) {
	r := &Router{
		Router: httprouter.New(),
	}

	tax, err := taxonomy.LoadFromDirectory(cfg.Taxonomy.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to load the venue taxonomy: %v", err)
	}

	venueInfos, err := config.LoadVenueInfoFromFile(cfg.VenueInfo.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue info: %v", err)
	}

	source, err := inventory.NewFileSource(cfg.Inventory.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to load the screen inventory: %v", err)
	}

	storedReqFetcher, err := file_fetcher.NewFileFetcher(cfg.StoredRequests.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored requests: %v", err)
	}

	r.ParamsValidator, err = openrtb_ext.NewVenueParamsValidator(cfg.VenueParams.SchemaDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create the venue params validator: %v", err)
	}

	r.MetricsEngine = pbsmetrics.NewMetrics(metrics.NewRegistry())

	converter := venues.NewConverter(tax, venues.FixedAudienceEstimator{})
	r.Exchange = exchange.NewExchange(source, converter, r.MetricsEngine, cfg)

	auctionEndpoint, err := dooh.NewAuctionEndpoint(r.Exchange, cfg, r.MetricsEngine)
	if err != nil {
		return nil, fmt.Errorf("failed to create the auction endpoint handler: %v", err)
	}

	inventoryEndpoint, err := dooh.NewInventoryEndpoint(r.Exchange, cfg, r.ParamsValidator, venueInfos, storedReqFetcher, r.MetricsEngine)
	if err != nil {
		return nil, fmt.Errorf("failed to create the inventory endpoint handler: %v", err)
	}

	if cfg.RateLimit.Enabled {
		lmt := tollbooth.NewLimiter(cfg.RateLimit.MaxRequestsPerSec, nil)
		auctionEndpoint = limitHandle(lmt, auctionEndpoint)
		inventoryEndpoint = limitHandle(lmt, inventoryEndpoint)
	}

	r.POST("/openrtb2/dooh/auction", auctionEndpoint)
	r.POST("/dooh/inventory", inventoryEndpoint)
	r.GET("/dooh/params", NewJsonDirectoryServer(cfg.VenueParams.SchemaDirectory, r.ParamsValidator))
	r.GET("/status", endpoints.NewStatusEndpoint(""))

	return r, nil
}

// NewJsonDirectoryServer is used to serve .json files from a directory as a single blob. For example,
// given a directory containing the files "a.json" and "b.json", this returns a Handle which serves JSON like:
//
//	{
//	  "a": { ... content from the file a.json ... },
//	  "b": { ... content from the file b.json ... }
//	}
//
// This function stores the file contents in memory, and should not be used on large directories.
// If the root directory, or any of the files in it, cannot be read, then the program will exit.
func NewJsonDirectoryServer(schemaDirectory string, validator openrtb_ext.VenueParamValidator) httprouter.Handle {
	// Slurp the files into memory first, since they're small and it minimizes request latency.
	files, err := os.ReadDir(schemaDirectory)
	if err != nil {
		glog.Fatalf("Failed to read directory %s: %v", schemaDirectory, err)
	}

	data := make(map[string]json.RawMessage, len(files))
	for _, file := range files {
		param := strings.TrimSuffix(file.Name(), ".json")
		paramName, isValid := openrtb_ext.GetParamName(param)
		if !isValid {
			glog.Fatalf("Schema exists for an unknown param: %s", param)
		}
		data[param] = json.RawMessage(validator.Schema(paramName))
	}

	response, err := json.Marshal(data)
	if err != nil {
		glog.Fatalf("Failed to marshal param JSON-schema: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Add("Content-Type", "application/json")
		w.Write(response)
	}
}

// NoCache sets the headers that keep proxies from caching exchange responses.
type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}

// SupportCORS allows any origin to call the exchange. Requests carry no
// cookies or credentials, so the open policy exposes nothing beyond what the
// endpoints already return.
func SupportCORS(handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowOriginFunc: func(string) bool {
			return true
		},
		AllowedMethods: []string{"POST", "GET"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"}})
	return c.Handler(handler)
}

// Admin returns the handler served on the admin port.
func Admin(version, revision string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", endpoints.NewVersionEndpoint(version, revision))
	return mux
}

func limitHandle(lmt *limiter.Limiter, handle httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		if httpError := tollbooth.LimitByRequest(lmt, w, r); httpError != nil {
			lmt.ExecOnLimitReached(w, r)
			w.Header().Set("Content-Type", lmt.GetMessageContentType())
			w.WriteHeader(httpError.StatusCode)
			fmt.Fprint(w, httpError.Message)
			return
		}
		handle(w, r, p)
	}
}
