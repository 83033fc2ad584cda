package api_test

import (
	"net/http"
	"testing"

	"github.com/insightworks/insights-cli/api"
	"github.com/insightworks/insights-cli/httpclient"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		require.Nil(t, api.ParseError(nil))
	})

	t.Run("no response means network error", func(t *testing.T) {
		parsed := api.ParseError(errors.New("dial tcp: connection refused"))
		require.Equal(t, "Network error. Please check your connection and try again.", parsed.Message)
		require.Empty(t, parsed.FieldErrors)
		require.Zero(t, parsed.Status)
	})

	t.Run("HTML body yields a routing hint", func(t *testing.T) {
		parsed := api.ParseError(&httpclient.StatusError{
			Status: http.StatusNotFound,
			Body:   []byte("<!DOCTYPE html><html><body>Not Found</body></html>"),
		})
		require.Equal(t, "Request failed (404). Endpoint not found or wrong URL.", parsed.Message)
		require.Equal(t, http.StatusNotFound, parsed.Status)
		require.Empty(t, parsed.FieldErrors)
	})

	t.Run("detail string becomes the message", func(t *testing.T) {
		parsed := api.ParseError(&httpclient.StatusError{
			Status: http.StatusUnauthorized,
			Body:   []byte(`{"detail":"Invalid credentials."}`),
		})
		require.Equal(t, "Invalid credentials.", parsed.Message)
		require.Equal(t, http.StatusUnauthorized, parsed.Status)
	})

	t.Run("detail array uses the first entry", func(t *testing.T) {
		parsed := api.ParseError(&httpclient.StatusError{
			Status: http.StatusBadRequest,
			Body:   []byte(`{"detail":["first problem","second problem"]}`),
		})
		require.Equal(t, "first problem", parsed.Message)
	})

	t.Run("field errors pass through", func(t *testing.T) {
		parsed := api.ParseError(&httpclient.StatusError{
			Status: http.StatusBadRequest,
			Body:   []byte(`{"errors":{"title":["This field is required."],"tags":["Too many tags."]}}`),
		})
		require.Equal(t, "Request failed. Please try again.", parsed.Message)
		require.Equal(t, []string{"This field is required."}, []string(parsed.FieldErrors["title"]))
		require.Equal(t, []string{"Too many tags."}, []string(parsed.FieldErrors["tags"]))
	})

	t.Run("unparseable body degrades to the fallback message", func(t *testing.T) {
		parsed := api.ParseError(&httpclient.StatusError{
			Status: http.StatusBadGateway,
			Body:   []byte("upstream exploded"),
		})
		require.Equal(t, "Request failed. Please try again.", parsed.Message)
		require.Equal(t, http.StatusBadGateway, parsed.Status)
	})

	t.Run("already-normalized errors pass through unchanged", func(t *testing.T) {
		original := &api.RequestError{Message: "done already", Status: 418}
		require.Same(t, original, api.ParseError(original))
	})
}
