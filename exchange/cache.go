package exchange

import (
	"encoding/json"

	"github.com/coocood/freecache"
	"github.com/golang/glog"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/openrtb_ext"
)

// venueCache memoizes converted venues. Conversion is pure, so a hit and a
// miss are indistinguishable to callers; the cache exists only to skip
// re-deriving the same venue on every request. Entries are keyed by taxonomy
// version so a taxonomy rollout naturally invalidates old conversions.
type venueCache struct {
	cache      *freecache.Cache
	ttlSeconds int
	keyPrefix  string
}

// newVenueCache returns a disabled cache when sizeBytes is not positive.
func newVenueCache(sizeBytes int, ttlSeconds int, taxonomyVersion string) *venueCache {
	if sizeBytes <= 0 {
		return &venueCache{}
	}
	return &venueCache{
		cache:      freecache.NewCache(sizeBytes),
		ttlSeconds: ttlSeconds,
		keyPrefix:  taxonomyVersion + "|",
	}
}

func (vc *venueCache) get(screenID string) (openrtb_ext.DOOHScreen, bool) {
	if vc.cache == nil {
		return openrtb_ext.DOOHScreen{}, false
	}
	data, err := vc.cache.Get([]byte(vc.keyPrefix + screenID))
	if err != nil {
		return openrtb_ext.DOOHScreen{}, false
	}
	var venue openrtb_ext.DOOHScreen
	if err := json.Unmarshal(data, &venue); err != nil {
		glog.Warningf("dropping corrupt venue cache entry for screen %s: %v", screenID, err)
		vc.cache.Del([]byte(vc.keyPrefix + screenID))
		return openrtb_ext.DOOHScreen{}, false
	}
	return venue, true
}

func (vc *venueCache) put(screenID string, venue openrtb_ext.DOOHScreen) {
	if vc.cache == nil {
		return
	}
	data, err := json.Marshal(venue)
	if err != nil {
		glog.Warningf("failed to marshal venue for screen %s into cache: %v", screenID, err)
		return
	}
	if err := vc.cache.Set([]byte(vc.keyPrefix+screenID), data, vc.ttlSeconds); err != nil {
		glog.Warningf("failed to cache venue for screen %s: %v", screenID, err)
	}
}
