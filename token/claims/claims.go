// Package claims reads the payload segment of a JWT for UI display purposes.
// Signature verification is the backend's responsibility; nothing here proves
// a token is genuine, it only makes its claims visible.
package claims

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Decode extracts the claims of a <header>.<payload>.<signature>-shaped token
// without verifying the signature. Decoding is best-effort: a token with
// fewer than two segments, an empty payload segment, bad base64url, invalid
// UTF-8, or invalid JSON yields nil rather than an error.
func Decode(token string) jwtlib.MapClaims {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return nil
	}

	payload, err := jwtlib.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil
	}
	if !utf8.Valid(payload) {
		return nil
	}

	var decoded jwtlib.MapClaims
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil
	}
	return decoded
}
