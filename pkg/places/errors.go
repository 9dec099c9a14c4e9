package places

import (
	"errors"
	"fmt"
	"strings"
)

// StatusOK is the only status the Places web services report on success.
const StatusOK = "OK"

// ErrEmptyInput is returned when there is neither a confirmed place nor text to search for.
var ErrEmptyInput = errors.New("places: input is empty")

// StatusError reports a non-OK status from the predictions or details request.
type StatusError struct {
	Op     string // "predictions" or "details"
	Status string
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("places: could not get %s: status is %s", e.Op, e.Status)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusOf extracts the service status from an error returned by the maps client,
// which reports non-OK statuses as "maps: <STATUS> - <message>".
func StatusOf(err error) string {
	if err == nil {
		return StatusOK
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}

	if rest, ok := strings.CutPrefix(err.Error(), "maps: "); ok {
		status, _, _ := strings.Cut(rest, " - ")
		if status != "" && strings.ToUpper(status) == status && !strings.Contains(status, " ") {
			return status
		}
	}
	return "UNKNOWN_ERROR"
}
