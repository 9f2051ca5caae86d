package file_fetcher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/stored_requests"
)

func TestFileFetcher(t *testing.T) {
	fetcher, err := NewFileFetcher("testdata")
	assert.NoError(t, err)

	data, errs := fetcher.FetchRequests(context.Background(), []string{"acct-defaults"})
	assert.Empty(t, errs)

	var stored struct {
		Targeting struct {
			VenueFilter struct {
				MaxCPM float64 `json:"maxcpm"`
			} `json:"venuefilter"`
		} `json:"targeting"`
	}
	assert.NoError(t, json.Unmarshal(data["acct-defaults"], &stored))
	assert.Equal(t, 1500.0, stored.Targeting.VenueFilter.MaxCPM)
}

func TestFileFetcherUnknownID(t *testing.T) {
	fetcher, err := NewFileFetcher("testdata")
	assert.NoError(t, err)

	data, errs := fetcher.FetchRequests(context.Background(), []string{"acct-defaults", "nope"})
	assert.Len(t, errs, 1)
	assert.IsType(t, stored_requests.NotFoundError{}, errs[0])
	assert.Contains(t, data, "acct-defaults")
	assert.NotContains(t, data, "nope")
}

func TestFileFetcherMissingDirectory(t *testing.T) {
	_, err := NewFileFetcher("testdata/does-not-exist")
	assert.Error(t, err)
}
