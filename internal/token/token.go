package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// RigRole is the role claim used for the rig's own backend calls
// (manifest fetch), as opposed to a simulated viewer/broadcaster role.
const RigRole = "rig_role"

var ErrInvalidSpec = errors.New("invalid token spec")

// Spec describes one credential to issue. Exactly one of UserID (linked
// identity) and OpaqueID (unlinked identity) must be set.
type Spec struct {
	Role      string `json:"role"`
	Secret    string `json:"-"`
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId,omitempty"`
	OpaqueID  string `json:"opaqueId,omitempty"`
}

// Issue builds the compact signed credential for a simulated identity:
// HS256 over a claim set of role, channel_id and one subject claim.
//
// The claims carry no timestamp or nonce, so identical specs yield
// byte-identical credentials (claims are a map and encoding/json emits map
// keys in sorted order).
func Issue(spec Spec) (string, error) {
	if spec.Secret == "" {
		return "", fmt.Errorf("%w: empty secret", ErrInvalidSpec)
	}
	if spec.UserID == "" && spec.OpaqueID == "" {
		return "", fmt.Errorf("%w: neither user id nor opaque id set", ErrInvalidSpec)
	}
	if spec.UserID != "" && spec.OpaqueID != "" {
		return "", fmt.Errorf("%w: both user id and opaque id set", ErrInvalidSpec)
	}

	claims := jwt.MapClaims{
		"role":       spec.Role,
		"channel_id": spec.ChannelID,
	}
	if spec.UserID != "" {
		claims["user_id"] = spec.UserID
	} else {
		claims["opaque_user_id"] = spec.OpaqueID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(spec.Secret))
}

// Decode returns the claims of a credential without verifying the signature.
// Used for display (view inspector, web preview) and round-trip tests.
func Decode(credential string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Verify checks the credential against the project secret and returns its
// claims. This mirrors what a local extension backend would do.
func Verify(credential, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})).
		ParseWithClaims(credential, claims, func(*jwt.Token) (any, error) {
			return []byte(secret), nil
		})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
