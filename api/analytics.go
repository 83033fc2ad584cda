package api

import (
	"context"

	"github.com/insightworks/insights-cli/httpclient"
)

// AnalyticsClient groups the aggregate reporting endpoints.
type AnalyticsClient struct {
	http *httpclient.Client
}

func NewAnalyticsClient(c *httpclient.Client) *AnalyticsClient {
	return &AnalyticsClient{http: c}
}

// TopTags fetches the tag usage aggregation.
func (a *AnalyticsClient) TopTags(ctx context.Context) (TopTagsResponse, error) {
	var resp TopTagsResponse
	if err := a.http.GetJSON(ctx, "/api/analytics/top-tags/", nil, &resp); err != nil {
		return TopTagsResponse{}, err
	}
	return resp, nil
}
