// Package api contains the typed request functions for the Insights backend
// and the single place where transport errors are normalized for display.
package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/insightworks/insights-cli/tokenstore"
)

// User is the backend-confirmed identity returned by the me endpoint.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Insight is one short text record with its tags.
type Insight struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedBy *User     `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InsightInput is the writable subset of an insight, used for create and
// update requests.
type InsightInput struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Body     string   `json:"body"`
	Tags     []string `json:"tags"`
}

// Paginated is the backend's envelope for list responses.
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// TopTag is one entry of the tag usage aggregation.
type TopTag struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TopTagsResponse is the analytics endpoint payload.
type TopTagsResponse struct {
	Tags []TopTag `json:"tags"`
}

// Credentials are exchanged for a token pair at login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest creates a new account. Email is optional.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// SignupResponse carries the created account plus its first token pair.
type SignupResponse struct {
	User   User            `json:"user"`
	Tokens tokenstore.Pair `json:"tokens"`
}

// ListParams are the supported insight list filters. Zero values are omitted
// from the query string.
type ListParams struct {
	Search   string
	Category string
	Tag      string
	Ordering string
	Page     int
	PageSize int
}

// Values encodes the parameters as backend query parameters.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Tag != "" {
		q.Set("tag", p.Tag)
	}
	if p.Ordering != "" {
		q.Set("ordering", p.Ordering)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}
