package claims

import jwtlib "github.com/golang-jwt/jwt/v5"

// DefaultUsername is displayed when a token carries no identifying claim.
const DefaultUsername = "User"

// Identity is the display identity derived from token claims. ID is nil when
// no numeric user id claim is present.
type Identity struct {
	ID       *int64
	Username string
}

// FromToken derives an Identity from the access token's decoded claims.
// Returns nil when the token is empty or its payload cannot be decoded.
//
// The fallback chains mirror the shapes different backends put in their
// tokens, first match wins:
//
//	id:       user_id -> id -> user.id
//	username: username -> user.username -> name -> sub -> "User"
func FromToken(token string) *Identity {
	if token == "" {
		return nil
	}
	decoded := Decode(token)
	if decoded == nil {
		return nil
	}
	return identityFromClaims(decoded)
}

func identityFromClaims(decoded jwtlib.MapClaims) *Identity {
	nested := nestedObject(decoded, "user")

	id := numberClaim(decoded, "user_id")
	if id == nil {
		id = numberClaim(decoded, "id")
	}
	if id == nil {
		id = numberClaim(nested, "id")
	}

	username, ok := stringClaim(decoded, "username")
	if !ok {
		username, ok = stringClaim(nested, "username")
	}
	if !ok {
		username, ok = stringClaim(decoded, "name")
	}
	if !ok {
		username, ok = stringClaim(decoded, "sub")
	}
	if !ok {
		username = DefaultUsername
	}

	return &Identity{ID: id, Username: username}
}

// numberClaim returns the claim as an int64 if it is a JSON number.
func numberClaim(m map[string]any, key string) *int64 {
	if m == nil {
		return nil
	}
	f, ok := m[key].(float64)
	if !ok {
		return nil
	}
	n := int64(f)
	return &n
}

func stringClaim(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}

func nestedObject(m map[string]any, key string) map[string]any {
	nested, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	return nested
}
