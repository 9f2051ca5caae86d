package file_fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/stored_requests"
)

// NewFileFetcher _immediately_ loads stored request data from local files.
// These are stored in memory for low-latency reads.
//
// This expects each file in the directory to be named "{stored_request_id}.json".
// For example, when asked to fetch the request with ID == "acct-23", it will
// return the data from "directory/acct-23.json".
func NewFileFetcher(directory string) (stored_requests.Fetcher, error) {
	fileInfos, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored request directory %s: %v", directory, err)
	}

	storedData := make(map[string]json.RawMessage, len(fileInfos))
	for _, fileInfo := range fileInfos {
		if fileInfo.IsDir() || !strings.HasSuffix(fileInfo.Name(), ".json") {
			continue
		}
		fileData, err := os.ReadFile(filepath.Join(directory, fileInfo.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read stored request file %s: %v", fileInfo.Name(), err)
		}
		if !json.Valid(fileData) {
			return nil, fmt.Errorf("stored request file %s is not valid JSON", fileInfo.Name())
		}
		storedData[strings.TrimSuffix(fileInfo.Name(), ".json")] = json.RawMessage(fileData)
	}

	return &eagerFetcher{storedData}, nil
}

type eagerFetcher struct {
	storedData map[string]json.RawMessage
}

func (fetcher *eagerFetcher) FetchRequests(ctx context.Context, ids []string) (map[string]json.RawMessage, []error) {
	var errs []error
	data := make(map[string]json.RawMessage, len(ids))
	for _, id := range ids {
		stored, ok := fetcher.storedData[id]
		if !ok {
			errs = append(errs, stored_requests.NotFoundError{ID: id})
			continue
		}
		data[id] = stored
	}
	return data, errs
}
