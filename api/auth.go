package api

import (
	"context"

	"github.com/insightworks/insights-cli/httpclient"
	"github.com/insightworks/insights-cli/tokenstore"
)

// AuthClient groups the authentication endpoints.
type AuthClient struct {
	http *httpclient.Client
}

func NewAuthClient(c *httpclient.Client) *AuthClient {
	return &AuthClient{http: c}
}

// Login exchanges credentials for a token pair. The pair is returned, not
// stored; persisting it is the session manager's job.
func (a *AuthClient) Login(ctx context.Context, creds Credentials) (tokenstore.Pair, error) {
	var pair tokenstore.Pair
	if err := a.http.PostJSON(ctx, "/api/auth/login/", creds, &pair); err != nil {
		return tokenstore.Pair{}, err
	}
	return pair, nil
}

// Signup creates an account and returns it along with its first token pair.
func (a *AuthClient) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var resp SignupResponse
	if err := a.http.PostJSON(ctx, "/api/auth/signup/", req, &resp); err != nil {
		return SignupResponse{}, err
	}
	return resp, nil
}

// Me fetches the identity the backend associates with the current token.
func (a *AuthClient) Me(ctx context.Context) (User, error) {
	var user User
	if err := a.http.GetJSON(ctx, "/api/auth/me/", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Logout asks the backend to invalidate the session server-side. Best-effort:
// local logout proceeds regardless of the outcome.
func (a *AuthClient) Logout(ctx context.Context) error {
	return a.http.PostJSON(ctx, "/api/auth/logout/", nil, nil)
}
