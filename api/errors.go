package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/insightworks/insights-cli/httpclient"
	"github.com/pkg/errors"
)

const (
	networkFailedMessage = "Network error. Please check your connection and try again."
	requestFailedMessage = "Request failed. Please try again."
)

// FieldErrors maps an input field name to its backend validation messages.
type FieldErrors map[string][]string

// RequestError is the normalized form every backend failure is reduced to
// before it reaches display logic. Status is zero when no response was
// received at all.
type RequestError struct {
	Message     string
	FieldErrors FieldErrors
	Status      int
}

func (e *RequestError) Error() string {
	return e.Message
}

// ParseError normalizes any error coming out of a request function. Callers
// never inspect transport errors directly; this is the single mapping from
// the wire to something presentable.
//
//   - no response (network/DNS/timeout): a generic network message
//   - HTML body (wrong URL, proxy error page): the status plus a routing hint
//   - structured {detail, errors} body: backend message and field errors
func ParseError(err error) *RequestError {
	if err == nil {
		return nil
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return &RequestError{Message: networkFailedMessage, FieldErrors: FieldErrors{}}
	}

	if looksLikeHTML(statusErr.Body) {
		return &RequestError{
			Message:     fmt.Sprintf("Request failed (%d). Endpoint not found or wrong URL.", statusErr.Status),
			FieldErrors: FieldErrors{},
			Status:      statusErr.Status,
		}
	}

	var payload struct {
		Detail json.RawMessage     `json:"detail"`
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(statusErr.Body, &payload); err != nil {
		return &RequestError{
			Message:     requestFailedMessage,
			FieldErrors: FieldErrors{},
			Status:      statusErr.Status,
		}
	}

	fieldErrors := FieldErrors{}
	for field, messages := range payload.Errors {
		fieldErrors[field] = messages
	}

	message := detailMessage(payload.Detail)
	if message == "" {
		message = requestFailedMessage
	}

	return &RequestError{
		Message:     message,
		FieldErrors: fieldErrors,
		Status:      statusErr.Status,
	}
}

// detailMessage accepts the two shapes backends put in "detail": a plain
// string or an array of strings, in which case the first entry wins.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		return asList[0]
	}

	return ""
}

func looksLikeHTML(body []byte) bool {
	trimmed := strings.ToLower(strings.TrimSpace(string(body)))
	return strings.HasPrefix(trimmed, "<!doctype") ||
		strings.HasPrefix(trimmed, "<html") ||
		strings.Contains(trimmed, "<body")
}
