package tokenstore

// Pair holds the access and refresh tokens issued at login. Both values are
// opaque strings as far as the store is concerned; no shape validation or
// expiry tracking happens here.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Repo defines the interface for durable token storage. Reads are safe before
// any token has ever been written and return empty strings, not errors.
// Writes are all-or-nothing: both values are committed together, and Clear
// removes both together.
type Repo interface {
	// Access returns the stored access token, or "" when none is stored
	Access() string

	// Refresh returns the stored refresh token, or "" when none is stored
	Refresh() string

	// SetTokens persists both tokens of the pair
	SetTokens(pair Pair) error

	// Clear removes both tokens
	Clear() error
}
