package dooh

import (
	"fmt"
	"net/http"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/errortypes"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/pbsmetrics"
)

// statusForError maps the error taxonomy onto HTTP status codes. No-match
// conditions never reach here; they are valid responses.
func statusForError(err error) int {
	switch errortypes.ReadCode(err) {
	case errortypes.BadInputErrorCode:
		return http.StatusBadRequest
	case errortypes.TimeoutErrorCode:
		return http.StatusRequestTimeout
	case errortypes.SourceUnavailableErrorCode:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func metricsStatusForError(err error) pbsmetrics.RequestStatus {
	if errortypes.ReadCode(err) == errortypes.BadInputErrorCode {
		return pbsmetrics.RequestStatusBadInput
	}
	return pbsmetrics.RequestStatusErr
}

func writeError(w http.ResponseWriter, err error) {
	w.WriteHeader(statusForError(err))
	fmt.Fprintf(w, "%s\n", err.Error())
}
