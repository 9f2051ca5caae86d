package stored_requests

import (
	"context"
	"encoding/json"
	"fmt"
)

// Fetcher knows how to fetch stored request data by id. Stored requests hold
// account-level defaults (typically a pre-agreed venue filter) that get
// merged into inbound requests referencing them.
//
// Implementations must be safe for concurrent access by multiple goroutines.
// Callers are expected to share a single instance as much as possible.
type Fetcher interface {
	// FetchRequests fetches the stored requests for the given IDs.
	//
	// The returned map will have a key for every ID in the list, unless
	// errors exist. The returned objects can only be read from. They may
	// not be written to.
	FetchRequests(ctx context.Context, ids []string) (data map[string]json.RawMessage, errs []error)
}

// NotFoundError is an error type to flag that an ID was not found by the
// Fetcher. Callers that treat a missing stored request as a bad request can
// disentangle it from infrastructure errors.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf(`Stored request with ID="%s" not found.`, e.ID)
}
