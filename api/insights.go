package api

import (
	"context"
	"fmt"

	"github.com/insightworks/insights-cli/httpclient"
)

// InsightsClient groups the insight CRUD endpoints.
type InsightsClient struct {
	http *httpclient.Client
}

func NewInsightsClient(c *httpclient.Client) *InsightsClient {
	return &InsightsClient{http: c}
}

// List fetches one page of insights matching the filters.
func (i *InsightsClient) List(ctx context.Context, params ListParams) (Paginated[Insight], error) {
	var page Paginated[Insight]
	if err := i.http.GetJSON(ctx, "/api/insights/", params.Values(), &page); err != nil {
		return Paginated[Insight]{}, err
	}
	return page, nil
}

// Get fetches a single insight by id.
func (i *InsightsClient) Get(ctx context.Context, id int64) (Insight, error) {
	var insight Insight
	if err := i.http.GetJSON(ctx, insightPath(id), nil, &insight); err != nil {
		return Insight{}, err
	}
	return insight, nil
}

// Create stores a new insight and returns it with server-assigned fields.
func (i *InsightsClient) Create(ctx context.Context, input InsightInput) (Insight, error) {
	var insight Insight
	if err := i.http.PostJSON(ctx, "/api/insights/", input, &insight); err != nil {
		return Insight{}, err
	}
	return insight, nil
}

// Update patches an existing insight and returns the updated record.
func (i *InsightsClient) Update(ctx context.Context, id int64, input InsightInput) (Insight, error) {
	var insight Insight
	if err := i.http.PatchJSON(ctx, insightPath(id), input, &insight); err != nil {
		return Insight{}, err
	}
	return insight, nil
}

// Delete removes an insight.
func (i *InsightsClient) Delete(ctx context.Context, id int64) error {
	return i.http.Delete(ctx, insightPath(id))
}

func insightPath(id int64) string {
	return fmt.Sprintf("/api/insights/%d/", id)
}
