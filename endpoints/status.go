package endpoints

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// NewStatusEndpoint serves the health check. A custom response body can be
// configured for load balancers that expect a specific payload; otherwise the
// handler answers 204.
func NewStatusEndpoint(responseText string) httprouter.Handle {
	if responseText == "" {
		return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusNoContent)
		}
	}

	responseBytes := []byte(responseText)
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Write(responseBytes)
	}
}
